// Package client is a thin HTTP client for the marketplace API, used by the
// CLI and by end-to-end tests.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/edvin/tradelink/internal/model"
)

type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// SetToken attaches a JWT to all subsequent requests.
func (c *Client) SetToken(token string) {
	c.token = token
}

func (c *Client) get(ctx context.Context, path string, result any) error {
	return c.doJSON(ctx, http.MethodGet, path, nil, result)
}

func (c *Client) doJSON(ctx context.Context, method, path string, body any, result any) error {
	var bodyBytes []byte
	if body != nil {
		var err error
		bodyBytes, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(bodyBytes))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("marketplace API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return apiError(method, path, resp)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// apiError surfaces the server's error message when the body carries one.
func apiError(method, path string, resp *http.Response) error {
	var body struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Error != "" {
		return fmt.Errorf("marketplace API %s %s: %s (status %d)", method, path, body.Error, resp.StatusCode)
	}
	return fmt.Errorf("marketplace API %s %s: status %d", method, path, resp.StatusCode)
}

type LoginResult struct {
	User  *model.User `json:"user"`
	Token string      `json:"token"`
}

func (c *Client) Login(ctx context.Context, email, phone, password string) (*LoginResult, error) {
	var result LoginResult
	err := c.doJSON(ctx, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    email,
		"phone":    phone,
		"password": password,
	}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

type RegisterInput struct {
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Password      string `json:"password"`
	UserType      string `json:"user_type"`
	CompanyName   string `json:"company_name"`
	Industry      string `json:"industry,omitempty"`
	AnnualRevenue string `json:"annual_revenue,omitempty"`
	Location      string `json:"location,omitempty"`
	GSTIN         string `json:"gstin,omitempty"`
}

func (c *Client) Register(ctx context.Context, input RegisterInput) (*model.User, error) {
	var result struct {
		User *model.User `json:"user"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth/register", input, &result); err != nil {
		return nil, err
	}
	return result.User, nil
}

// ProductQuery mirrors the catalog endpoint's query parameters. Zero values
// are omitted.
type ProductQuery struct {
	Query          string
	Category       string
	SupplierRating float64
	Location       string
	SortBy         string
	MaxPrice       float64
}

func (q ProductQuery) encode() string {
	v := url.Values{}
	if q.Query != "" {
		v.Set("query", q.Query)
	}
	if q.Category != "" {
		v.Set("category", q.Category)
	}
	if q.SupplierRating > 0 {
		v.Set("supplierRating", strconv.FormatFloat(q.SupplierRating, 'f', -1, 64))
	}
	if q.Location != "" {
		v.Set("location", q.Location)
	}
	if q.SortBy != "" {
		v.Set("sortBy", q.SortBy)
	}
	if q.MaxPrice > 0 {
		v.Set("maxPrice", strconv.FormatFloat(q.MaxPrice, 'f', -1, 64))
	}
	if len(v) == 0 {
		return ""
	}
	return "?" + v.Encode()
}

func (c *Client) Products(ctx context.Context, q ProductQuery) ([]model.CatalogProduct, error) {
	var result struct {
		Products []model.CatalogProduct `json:"products"`
	}
	if err := c.get(ctx, "/api/products"+q.encode(), &result); err != nil {
		return nil, err
	}
	return result.Products, nil
}

func (c *Client) Product(ctx context.Context, id string) (*model.CatalogProduct, error) {
	var product model.CatalogProduct
	if err := c.get(ctx, "/api/products/"+url.PathEscape(id), &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *Client) Categories(ctx context.Context) ([]model.Category, error) {
	var result struct {
		Categories []model.Category `json:"categories"`
	}
	if err := c.get(ctx, "/api/categories", &result); err != nil {
		return nil, err
	}
	return result.Categories, nil
}

func (c *Client) Supplier(ctx context.Context, id string) (*model.Profile, error) {
	var profile model.Profile
	if err := c.get(ctx, "/api/suppliers/"+url.PathEscape(id), &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (c *Client) SupplierProducts(ctx context.Context, id string) ([]model.CatalogProduct, error) {
	var result struct {
		Products []model.CatalogProduct `json:"products"`
	}
	if err := c.get(ctx, "/api/suppliers/"+url.PathEscape(id)+"/products", &result); err != nil {
		return nil, err
	}
	return result.Products, nil
}

func (c *Client) Me(ctx context.Context) (*model.Profile, error) {
	var profile model.Profile
	if err := c.get(ctx, "/api/me", &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (c *Client) MyProducts(ctx context.Context) ([]model.CatalogProduct, error) {
	var result struct {
		Products []model.CatalogProduct `json:"products"`
	}
	if err := c.get(ctx, "/api/me/products", &result); err != nil {
		return nil, err
	}
	return result.Products, nil
}

type CreateProductInput struct {
	Name                   string          `json:"name"`
	CategoryID             *string         `json:"category_id,omitempty"`
	Description            *string         `json:"description,omitempty"`
	PriceRange             *string         `json:"price_range,omitempty"`
	MinOrderQuantity       *int            `json:"min_order_quantity,omitempty"`
	CountryOfOrigin        *string         `json:"country_of_origin,omitempty"`
	CertificationStandards []string        `json:"certification_standards,omitempty"`
	Specifications         json.RawMessage `json:"specifications,omitempty"`
	Tags                   []string        `json:"tags,omitempty"`
	Images                 []string        `json:"images,omitempty"`
}

func (c *Client) CreateProduct(ctx context.Context, input CreateProductInput) (*model.Product, error) {
	var product model.Product
	if err := c.doJSON(ctx, http.MethodPost, "/api/products", input, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// UploadImage proxies one image file through the API and returns its public URL.
func (c *Client) UploadImage(ctx context.Context, filename string, data io.Reader) (string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("build multipart form: %w", err)
	}
	if _, err := io.Copy(part, data); err != nil {
		return "", fmt.Errorf("read image: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("build multipart form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/upload", &buf)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("marketplace API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", apiError(http.MethodPost, "/api/upload", resp)
	}

	var result struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	return result.URL, nil
}

type CreateInquiryInput struct {
	SupplierID       string  `json:"supplier_id"`
	ProductID        *string `json:"product_id,omitempty"`
	Subject          string  `json:"subject"`
	Message          string  `json:"message"`
	QuantityRequired *int    `json:"quantity_required,omitempty"`
	TargetPrice      *string `json:"target_price,omitempty"`
	DeliveryTimeline *string `json:"delivery_timeline,omitempty"`
}

func (c *Client) CreateInquiry(ctx context.Context, input CreateInquiryInput) (*model.Inquiry, error) {
	var inquiry model.Inquiry
	if err := c.doJSON(ctx, http.MethodPost, "/api/inquiries", input, &inquiry); err != nil {
		return nil, err
	}
	return &inquiry, nil
}

func (c *Client) Inquiries(ctx context.Context) ([]model.Inquiry, error) {
	var result struct {
		Inquiries []model.Inquiry `json:"inquiries"`
	}
	if err := c.get(ctx, "/api/inquiries", &result); err != nil {
		return nil, err
	}
	return result.Inquiries, nil
}

func (c *Client) InquiryResponses(ctx context.Context, inquiryID string) ([]model.InquiryResponse, error) {
	var result struct {
		Responses []model.InquiryResponse `json:"responses"`
	}
	if err := c.get(ctx, "/api/inquiries/"+url.PathEscape(inquiryID)+"/responses", &result); err != nil {
		return nil, err
	}
	return result.Responses, nil
}

func (c *Client) RespondToInquiry(ctx context.Context, inquiryID, message string) (*model.InquiryResponse, error) {
	var resp model.InquiryResponse
	err := c.doJSON(ctx, http.MethodPost, "/api/inquiries/"+url.PathEscape(inquiryID)+"/responses",
		map[string]string{"message": message}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}
