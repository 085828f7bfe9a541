package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/edvin/tradelink/internal/client"
	"github.com/edvin/tradelink/internal/session"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "register":
		cmdRegister(os.Args[2:])
	case "login":
		cmdLogin(os.Args[2:])
	case "logout":
		cmdLogout()
	case "whoami":
		cmdWhoami()
	case "products":
		cmdProducts(os.Args[2:])
	case "product":
		cmdProduct(os.Args[2:])
	case "categories":
		cmdCategories()
	case "create-product":
		cmdCreateProduct(os.Args[2:])
	case "inquiries":
		cmdInquiries()
	case "inquire":
		cmdInquire(os.Args[2:])
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `Usage: tradelink-cli <command> [options]

Commands:
  register        Create a new account
  login           Sign in and store a session
  logout          Clear the stored session
  whoami          Show the signed-in profile
  products        Search the catalog
  product <id>    Show one product
  categories      List categories
  create-product  Add a product (suppliers only)
  inquiries       List your inquiries
  inquire         Send an inquiry to a supplier

Environment:
  TRADELINK_API_URL  API base URL (default http://localhost:8080)`)
}

func newManager() (*client.Client, *session.Manager) {
	baseURL := os.Getenv("TRADELINK_API_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	path, err := session.DefaultPath()
	if err != nil {
		fatal(err)
	}

	api := client.New(baseURL)
	m := session.NewManager(api, session.NewFileStore(path))
	if _, err := m.Restore(); err != nil {
		fatal(err)
	}
	return api, m
}

func newContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 60*time.Second)
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

func cmdRegister(args []string) {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	email := fs.String("email", "", "Email address (required)")
	phone := fs.String("phone", "", "Phone number (required)")
	password := fs.String("password", "", "Password (required)")
	userType := fs.String("type", "buyer", "Account type: buyer or supplier")
	company := fs.String("company", "", "Company name (required)")
	industry := fs.String("industry", "", "Industry")
	revenue := fs.String("revenue", "", "Annual revenue bracket")
	location := fs.String("location", "", "City")
	gstin := fs.String("gstin", "", "GSTIN")
	fs.Parse(args)

	if *email == "" || *phone == "" || *password == "" || *company == "" {
		fmt.Fprintln(os.Stderr, "Usage: tradelink-cli register -email E -phone P -password PW -company NAME [-type buyer|supplier]")
		os.Exit(1)
	}

	_, m := newManager()
	ctx, cancel := newContext()
	defer cancel()

	user, err := m.SignUp(ctx, client.RegisterInput{
		Email:         *email,
		Phone:         *phone,
		Password:      *password,
		UserType:      *userType,
		CompanyName:   *company,
		Industry:      *industry,
		AnnualRevenue: *revenue,
		Location:      *location,
		GSTIN:         *gstin,
	})
	if err != nil {
		fatal(err)
	}

	fmt.Printf("Registered %s. Sign in with: tradelink-cli login -email %s\n", user.Email, user.Email)
}

func cmdLogin(args []string) {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "Email address")
	phone := fs.String("phone", "", "Phone number")
	password := fs.String("password", "", "Password (required)")
	fs.Parse(args)

	if (*email == "" && *phone == "") || *password == "" {
		fmt.Fprintln(os.Stderr, "Usage: tradelink-cli login [-email E | -phone P] -password PW")
		os.Exit(1)
	}

	_, m := newManager()
	ctx, cancel := newContext()
	defer cancel()

	s, err := m.SignIn(ctx, *email, *phone, *password)
	if err != nil {
		fatal(err)
	}

	fmt.Printf("Signed in as %s\n", s.Email)
}

func cmdLogout() {
	_, m := newManager()
	if err := m.SignOut(); err != nil {
		fatal(err)
	}
	fmt.Println("Signed out")
}

func cmdWhoami() {
	api, _ := newManager()
	ctx, cancel := newContext()
	defer cancel()

	profile, err := api.Me(ctx)
	if err != nil {
		fatal(err)
	}

	fmt.Printf("%-15s %s\n", "Company:", profile.CompanyName)
	fmt.Printf("%-15s %s\n", "Type:", profile.UserType)
	if profile.City != nil {
		fmt.Printf("%-15s %s\n", "City:", *profile.City)
	}
	fmt.Printf("%-15s %.1f\n", "Rating:", profile.Rating)
	fmt.Printf("%-15s %t\n", "Verified:", profile.IsVerified)
}

func cmdProducts(args []string) {
	fs := flag.NewFlagSet("products", flag.ExitOnError)
	query := fs.String("query", "", "Free-text search")
	category := fs.String("category", "", "Category name")
	rating := fs.Float64("rating", 0, "Minimum supplier rating")
	location := fs.String("location", "", "Supplier location")
	sortBy := fs.String("sort", "", "Sort: newest, price_asc, price_desc")
	maxPrice := fs.Float64("max-price", 0, "Maximum price")
	fs.Parse(args)

	api, _ := newManager()
	ctx, cancel := newContext()
	defer cancel()

	products, err := api.Products(ctx, client.ProductQuery{
		Query:          *query,
		Category:       *category,
		SupplierRating: *rating,
		Location:       *location,
		SortBy:         *sortBy,
		MaxPrice:       *maxPrice,
	})
	if err != nil {
		fatal(err)
	}

	if len(products) == 0 {
		fmt.Println("No products found")
		return
	}

	fmt.Printf("%-36s %-30s %-15s %s\n", "ID", "NAME", "PRICE", "SUPPLIER")
	for _, p := range products {
		price := "-"
		if p.PriceRange != nil {
			price = *p.PriceRange
		}
		fmt.Printf("%-36s %-30s %-15s %s\n", p.ID, p.Name, price, p.Supplier.CompanyName)
	}
}

func cmdProduct(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: tradelink-cli product <id>")
		os.Exit(1)
	}

	api, _ := newManager()
	ctx, cancel := newContext()
	defer cancel()

	product, err := api.Product(ctx, args[0])
	if err != nil {
		fatal(err)
	}

	out, err := json.MarshalIndent(product, "", "  ")
	if err != nil {
		fatal(err)
	}
	fmt.Println(string(out))
}

func cmdCategories() {
	api, _ := newManager()
	ctx, cancel := newContext()
	defer cancel()

	categories, err := api.Categories(ctx)
	if err != nil {
		fatal(err)
	}

	fmt.Printf("%-36s %s\n", "ID", "NAME")
	for _, c := range categories {
		fmt.Printf("%-36s %s\n", c.ID, c.Name)
	}
}

// multiFlag collects a repeatable string flag.
type multiFlag []string

func (f *multiFlag) String() string { return fmt.Sprint(*f) }

func (f *multiFlag) Set(v string) error {
	*f = append(*f, v)
	return nil
}

func cmdCreateProduct(args []string) {
	fs := flag.NewFlagSet("create-product", flag.ExitOnError)
	name := fs.String("name", "", "Product name (required)")
	categoryID := fs.String("category", "", "Category ID")
	description := fs.String("description", "", "Description")
	priceRange := fs.String("price", "", "Price range, e.g. \"₹500 - ₹800 per unit\"")
	minOrder := fs.Int("min-order", 0, "Minimum order quantity")
	origin := fs.String("origin", "", "Country of origin")
	var images multiFlag
	fs.Var(&images, "image", "Image file to upload (repeatable, up to 3)")
	fs.Parse(args)

	if *name == "" {
		fmt.Fprintln(os.Stderr, "Usage: tradelink-cli create-product -name NAME [options]")
		os.Exit(1)
	}

	api, _ := newManager()
	ctx, cancel := newContext()
	defer cancel()

	// Upload images first; a failed upload skips that image but the product
	// is still created with the ones that succeeded.
	var urls []string
	for _, path := range images {
		f, err := os.Open(path)
		if err != nil {
			fatal(err)
		}
		url, err := api.UploadImage(ctx, filepath.Base(path), f)
		f.Close()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: upload %s failed: %v\n", path, err)
			continue
		}
		urls = append(urls, url)
	}

	input := client.CreateProductInput{Name: *name, Images: urls}
	if *categoryID != "" {
		input.CategoryID = categoryID
	}
	if *description != "" {
		input.Description = description
	}
	if *priceRange != "" {
		input.PriceRange = priceRange
	}
	if *minOrder > 0 {
		input.MinOrderQuantity = minOrder
	}
	if *origin != "" {
		input.CountryOfOrigin = origin
	}

	product, err := api.CreateProduct(ctx, input)
	if err != nil {
		fatal(err)
	}

	fmt.Printf("Created product %s (%s), awaiting approval\n", product.Name, product.ID)
}

func cmdInquiries() {
	api, _ := newManager()
	ctx, cancel := newContext()
	defer cancel()

	inquiries, err := api.Inquiries(ctx)
	if err != nil {
		fatal(err)
	}

	if len(inquiries) == 0 {
		fmt.Println("No inquiries")
		return
	}

	fmt.Printf("%-36s %-30s %-12s %s\n", "ID", "SUBJECT", "STATUS", "CREATED")
	for _, q := range inquiries {
		fmt.Printf("%-36s %-30s %-12s %s\n", q.ID, q.Subject, q.Status, q.CreatedAt.Format("2006-01-02"))
	}
}

func cmdInquire(args []string) {
	fs := flag.NewFlagSet("inquire", flag.ExitOnError)
	supplierID := fs.String("supplier", "", "Supplier profile ID (required)")
	productID := fs.String("product", "", "Product ID")
	subject := fs.String("subject", "", "Subject (required)")
	message := fs.String("message", "", "Message (required)")
	quantity := fs.Int("quantity", 0, "Quantity required")
	fs.Parse(args)

	if *supplierID == "" || *subject == "" || *message == "" {
		fmt.Fprintln(os.Stderr, "Usage: tradelink-cli inquire -supplier ID -subject S -message M [options]")
		os.Exit(1)
	}

	api, _ := newManager()
	ctx, cancel := newContext()
	defer cancel()

	input := client.CreateInquiryInput{
		SupplierID: *supplierID,
		Subject:    *subject,
		Message:    *message,
	}
	if *productID != "" {
		input.ProductID = productID
	}
	if *quantity > 0 {
		input.QuantityRequired = quantity
	}

	inquiry, err := api.CreateInquiry(ctx, input)
	if err != nil {
		fatal(err)
	}

	fmt.Printf("Inquiry %s sent (%s)\n", inquiry.ID, inquiry.Status)
}
