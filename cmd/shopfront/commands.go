package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"shopfront/pkg/domain"
)

var (
	filterCategory string
	filterMaxPrice float64
)

var productsCmd = &cobra.Command{
	Use:   "products",
	Short: "List the catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := products.FetchProducts(); err != nil {
			// Catalog staleness is non-fatal; show whatever we have.
			fmt.Println("(catalog refresh failed, showing cached products)")
		}
		for _, p := range products.Filter(filterCategory, filterMaxPrice) {
			fmt.Printf("%s  %-30s  %10.2f  %s\n", p.ID, p.Name, p.Price, p.Category)
		}
		return nil
	},
}

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List the distinct product categories",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := products.FetchCategories(); err != nil {
			return err
		}
		for _, c := range products.Categories() {
			fmt.Println(c)
		}
		return nil
	},
}

var loginCmd = &cobra.Command{
	Use:   "login <email> <password>",
	Short: "Log in and persist the session",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		err := accounts.Login(args[0], args[1])
		flushNotification()
		return err
	},
}

var registerCmd = &cobra.Command{
	Use:   "register <email> <password>",
	Short: "Create an account",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		err := accounts.Register(args[0], args[1])
		flushNotification()
		return err
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and clear the persisted session",
	RunE: func(cmd *cobra.Command, args []string) error {
		accounts.Logout(func() {
			fmt.Println("Logged out.")
		})
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current session identity",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, user, ok := sessions.Current()
		if !ok {
			fmt.Println("Not logged in.")
			return nil
		}
		fmt.Printf("%s (%s)\n", user.Email, user.Role)
		return nil
	},
}

var cartCmd = &cobra.Command{
	Use:   "cart",
	Short: "Manage your cart",
}

var cartShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the cart and its total",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := basket.Refresh(); err != nil {
			if !sessions.LoggedIn() {
				fmt.Println("Please log in to see your cart.")
				return nil
			}
			return err
		}
		lines := basket.Lines()
		if len(lines) == 0 {
			fmt.Println("Your cart is empty.")
			return nil
		}
		for _, line := range lines {
			fmt.Printf("%s  %-30s  %10.2f  x%d\n",
				line.Product.ID, line.Product.Name, line.Product.Price, line.Quantity)
		}
		fmt.Printf("Total: %s\n", basket.Total())
		return nil
	},
}

var cartAddCmd = &cobra.Command{
	Use:   "add <product-id> [quantity]",
	Short: "Add a product to the cart",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		quantity := 1
		if len(args) == 2 {
			n, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("quantity %q is not a number", args[1])
			}
			quantity = n
		}
		err := basket.Add(args[0], quantity)
		flushNotification()
		return err
	},
}

var cartUpdateCmd = &cobra.Command{
	Use:   "update <product-id> <quantity>",
	Short: "Set a line's quantity (0 removes it)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		quantity, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("quantity %q is not a number", args[1])
		}
		err = basket.UpdateQuantity(args[0], quantity)
		flushNotification()
		return err
	},
}

var cartRemoveCmd = &cobra.Command{
	Use:   "remove <product-id>",
	Short: "Remove a line from the cart",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		err := basket.Remove(args[0])
		flushNotification()
		return err
	},
}

var cartClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Empty the cart",
	RunE: func(cmd *cobra.Command, args []string) error {
		err := basket.Clear()
		flushNotification()
		return err
	},
}

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Manage the catalog (admin token required)",
}

var (
	saveID          string
	saveName        string
	saveDescription string
	savePrice       float64
	saveCategory    string
	saveImageURL    string
)

var adminSaveCmd = &cobra.Command{
	Use:   "save",
	Short: "Create a product, or update it when --id is given",
	RunE: func(cmd *cobra.Command, args []string) error {
		saved, err := editor.Save(domain.Product{
			ID:          saveID,
			Name:        saveName,
			Description: saveDescription,
			Price:       savePrice,
			Category:    saveCategory,
			ImageURL:    saveImageURL,
		})
		flushNotification()
		if err != nil {
			return err
		}
		fmt.Println(saved.ID)
		return nil
	},
}

var adminDeleteCmd = &cobra.Command{
	Use:   "delete <product-id>",
	Short: "Delete a product",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		err := editor.Delete(args[0])
		flushNotification()
		return err
	},
}
