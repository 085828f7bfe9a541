package core

type Services struct {
	Auth     *AuthService
	Profile  *ProfileService
	Category *CategoryService
	Product  *ProductService
	Inquiry  *InquiryService
}

func NewServices(db DB, jwtSecret, jwtIssuer string) *Services {
	return &Services{
		Auth:     NewAuthService(db, jwtSecret, jwtIssuer),
		Profile:  NewProfileService(db),
		Category: NewCategoryService(db),
		Product:  NewProductService(db),
		Inquiry:  NewInquiryService(db),
	}
}
