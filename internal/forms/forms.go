package forms

// PostForm carries the fields of the post create/edit form.
// GroupID is optional; zero means no group selected.
type PostForm struct {
	Text    string `form:"text" validate:"required"`
	GroupID uint   `form:"group" validate:"omitempty"`
}

// CommentForm carries the single field of the comment form.
type CommentForm struct {
	Text string `form:"text" validate:"required"`
}

// SignupForm mirrors the registration page fields.
type SignupForm struct {
	FirstName string `form:"first_name" validate:"max=150"`
	LastName  string `form:"last_name" validate:"max=150"`
	Username  string `form:"username" validate:"required,max=150,alphanumunicode"`
	Email     string `form:"email" validate:"required,email"`
	Password1 string `form:"password1" validate:"required,min=8"`
	Password2 string `form:"password2" validate:"required,eqfield=Password1"`
}

// LoginForm carries the login page fields.
type LoginForm struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
}
