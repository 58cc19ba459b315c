package apperror

import "fmt"

// Code identifies an entry of the message catalog.
type Code string

const (
	UserSuccessfullyRegistered       Code = "USER_SUCCESSFULLY_REGISTERED"
	UserLogIn                        Code = "USER_LOG_IN"
	UserLoggedOut                    Code = "USER_LOGGED_OUT"
	ArticleWithIDSuccessfullyDeleted Code = "ARTICLE_WITH_ID_SUCCESSFULLY_DELETED"
	BlogWithIDSuccessfullyDeleted    Code = "BLOG_WITH_ID_SUCCESSFULLY_DELETED"
	UsernameAlreadyTaken             Code = "USERNAME_ALREADY_TAKEN"
	EmailAlreadyTaken                Code = "EMAIL_ALREADY_TAKEN"
	UserAlreadyLoggedIn              Code = "USER_ALREADY_LOGGED_IN"
	InvalidCredentials               Code = "INVALID_CREDENTIALS"
	UserNotFound                     Code = "USER_NOT_FOUND"
	BlogNotFound                     Code = "BLOG_NOT_FOUND"
	ArticleNotFound                  Code = "ARTICLE_NOT_FOUND"
	BlogNameAlreadyExist             Code = "BLOG_NAME_ALREADY_EXIST"
	ArticleNameAlreadyExist          Code = "ARTICLE_NAME_ALREADY_EXIST"
	NoBlogsFound                     Code = "NO_BLOGS_FOUND"
	NoArticlesFound                  Code = "NO_ARTICLES_FOUND"
	CouldNotInitializeFolder         Code = "COULD_NOT_INITIALIZE_FOLDER"
	CouldNotStoreImage               Code = "COULD_NOT_STORE_IMAGE"
	CouldNotLoadFile                 Code = "COULD_NOT_LOAD_FILE"
	CouldNotDeleteImage              Code = "COULD_NOT_DELETE_IMAGE"
	NotAuthorized                    Code = "NOT_AUTHORIZED"
	FileTooLarge                     Code = "FILE_TOO_LARGE"
	InternalFailure                  Code = "INTERNAL_FAILURE"
)

var catalog = map[Code]string{
	UserSuccessfullyRegistered:       "%s register successfully",
	UserLogIn:                        "%s logged in, Header key: session-id, Header value: %s",
	UserLoggedOut:                    "%s logged out",
	ArticleWithIDSuccessfullyDeleted: "Article with id \"%s\" successfully deleted",
	BlogWithIDSuccessfullyDeleted:    "Blog with \"%s\" successfully deleted",
	UsernameAlreadyTaken:             "\"%s\" is already taken!",
	EmailAlreadyTaken:                "The email \"%s\" is already taken!",
	UserAlreadyLoggedIn:              "You are already logged in",
	InvalidCredentials:               "Invalid email or password",
	UserNotFound:                     "User not found",
	BlogNotFound:                     "Blog not found",
	ArticleNotFound:                  "Article not found",
	BlogNameAlreadyExist:             "You can`t have duplicate names in your blogs",
	ArticleNameAlreadyExist:          "You can`t have duplicate article names in your blog",
	NoBlogsFound:                     "No blogs found",
	NoArticlesFound:                  "No articles found",
	CouldNotInitializeFolder:         "Could not initialize folder for upload!",
	CouldNotStoreImage:               "Could not store the file. Error: %s",
	CouldNotLoadFile:                 "Could not read the file!",
	CouldNotDeleteImage:              "Could not delete the file. Error: %s",
	NotAuthorized:                    "Not authorized interaction",
	FileTooLarge:                     "File must be not larger than 2 MB!",
	InternalFailure:                  "Something went wrong, please try again later",
}

// Message renders the catalog entry for code with positional args.
func Message(code Code, args ...any) string {
	tpl, ok := catalog[code]
	if !ok {
		return string(code)
	}
	if len(args) == 0 {
		return tpl
	}
	return fmt.Sprintf(tpl, args...)
}
