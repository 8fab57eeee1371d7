package handlers

// ProductForm carries the raw submitted form fields. Price stays a string so
// a rejected form can be echoed back exactly as the user typed it.
type ProductForm struct {
	Id          int    `json:"id,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       string `json:"price"`
	Category    string `json:"category"`
	ImagePath   string `json:"image_path,omitempty"`
}

type ProductResponse struct {
	Id          int     `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	ImagePath   string  `json:"image_path,omitempty"`
}

type Meta struct {
	TotalCount int `json:"total_count"`
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalPages int `json:"total_pages"`
}

type ProductsSearchResult struct {
	Data []ProductResponse `json:"data"`
	Meta Meta              `json:"meta"`
}

// ValidationFailure is returned with a 400 so the caller can re-render the
// form with the rejected input.
type ValidationFailure struct {
	Errors []ProductValidationError `json:"errors"`
	Form   ProductForm              `json:"form"`
}

type CredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResult struct {
	Token string `json:"token"`
}

type RegisterResult struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

type ImportProductsResult struct {
	ImportedProductsCount int                      `json:"imported"`
	Errors                []ProductValidationError `json:"errors"`
}
