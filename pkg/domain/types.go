package domain

type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

// Product is a catalog entry owned by the backend; the client only
// holds read-only cached copies.
type Product struct {
	ID          string  `json:"_id,omitempty"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	ImageURL    string  `json:"imageUrl"`
}

type User struct {
	ID    string   `json:"_id"`
	Email string   `json:"email"`
	Role  UserRole `json:"role"`
}

// CartLine is one entry of the server-authoritative cart. The backend
// populates the product reference under the productId key; a line
// whose product failed to resolve decodes with an empty Product.ID.
type CartLine struct {
	Product  Product `json:"productId"`
	Quantity int     `json:"quantity"`
}

type NotificationKind string

const (
	KindSuccess NotificationKind = "success"
	KindError   NotificationKind = "error"
)

// Notification is a transient user-facing message.
type Notification struct {
	Message string
	Kind    NotificationKind
}
