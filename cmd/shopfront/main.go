package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"shopfront/internal/account"
	"shopfront/internal/admin"
	"shopfront/internal/apiclient"
	"shopfront/internal/cart"
	"shopfront/internal/catalog"
	"shopfront/internal/config"
	"shopfront/internal/notify"
	"shopfront/internal/session"
	"shopfront/internal/util"
)

var cfgPath string

// Shared services, wired once per invocation.
var (
	api      *apiclient.Client
	sessions *session.Manager
	notifier *notify.Broadcaster
	products *catalog.Client
	basket   *cart.Reconciler
	accounts *account.Service
	editor   *admin.Editor
)

var rootCmd = &cobra.Command{
	Use:           "shopfront",
	Short:         "Storefront client for the shop backend",
	Long:          "Browse the catalog, manage your cart and account, and edit products as an admin, all against the remote shop API.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initServices()
	},
}

func initServices() error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	util.InitLogger(cfg.LogLevel)

	api = apiclient.NewClientWithTimeout(cfg.APIBaseURL, time.Duration(cfg.RequestTimeoutSeconds)*time.Second)

	var store session.Store
	if cfg.RedisAddr != "" {
		store = session.NewRedisStore(cfg.RedisAddr, cfg.RedisPassword)
	} else {
		fileStore, err := session.NewFileStore(cfg.SessionDir)
		if err != nil {
			return err
		}
		store = fileStore
	}
	sessions = session.NewManager(store)

	notifier = notify.New()
	products = catalog.New(api)
	basket = cart.New(api, sessions, notifier)
	accounts = account.NewService(api, sessions, notifier)
	editor = admin.NewEditor(api, sessions, notifier, products)
	return nil
}

// flushNotification prints the toast a browser user would see.
func flushNotification() {
	if n, ok := notifier.Current(); ok {
		fmt.Printf("[%s] %s\n", n.Kind, n.Message)
	}
}

func main() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to config.yaml")

	productsCmd.Flags().StringVar(&filterCategory, "category", "", "only show this category")
	productsCmd.Flags().Float64Var(&filterMaxPrice, "max-price", 0, "only show products at or below this price")
	productsCmd.AddCommand(categoriesCmd)

	cartCmd.AddCommand(cartShowCmd, cartAddCmd, cartUpdateCmd, cartRemoveCmd, cartClearCmd)

	adminSaveCmd.Flags().StringVar(&saveID, "id", "", "product id (empty creates a new product)")
	adminSaveCmd.Flags().StringVar(&saveName, "name", "", "product name")
	adminSaveCmd.Flags().StringVar(&saveDescription, "description", "", "product description")
	adminSaveCmd.Flags().Float64Var(&savePrice, "price", 0, "product price")
	adminSaveCmd.Flags().StringVar(&saveCategory, "category", "", "product category")
	adminSaveCmd.Flags().StringVar(&saveImageURL, "image-url", "", "product image URL")
	adminCmd.AddCommand(adminSaveCmd, adminDeleteCmd)

	rootCmd.AddCommand(productsCmd, loginCmd, registerCmd, logoutCmd, whoamiCmd, cartCmd, adminCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
