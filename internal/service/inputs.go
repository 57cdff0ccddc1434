package service

// RegisterInput carries already-validated registration fields.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// PostInput carries post fields. On update, empty fields keep their stored value.
type PostInput struct {
	Title string
	Body  string
}
