package validation

import "fmt"

const (
	UsernameMinLength       = 3
	UsernameMaxLength       = 100
	PasswordMinLength       = 4
	PasswordMaxLength       = 72
	TitleMinLength          = 3
	TitleMaxLength          = 100
	ArticleContentMinLength = 4
	ArticleContentMaxLength = 10000
)

// Result is the outcome of a rule. Success is the only non-failure value.
type Result string

const (
	Success                          Result = "SUCCESS"
	NameIsMandatory                  Result = "NAME_IS_MANDATORY"
	NameMustBeBetween                Result = "NAME_MUST_BE_BETWEEN"
	NameMustHaveTheseSymbols         Result = "NAME_MUST_HAVE_THESE_SYMBOLS"
	PasswordIsMandatory              Result = "PASSWORD_IS_MANDATORY"
	PasswordMustBeBetween            Result = "PASSWORD_MUST_BE_BETWEEN"
	PasswordMustHaveTheseSymbols     Result = "PASSWORD_MUST_HAVE_THESE_SYMBOLS"
	EmailIsMandatory                 Result = "EMAIL_IS_MANDATORY"
	EmailIsNotValid                  Result = "EMAIL_IS_NOT_VALID"
	BlogTitleIsMandatory             Result = "BLOG_TITLE_IS_MANDATORY"
	BlogTitleMustBeBetween           Result = "BLOG_TITLE_MUST_BE_BETWEEN"
	BlogTitleMustHaveTheseSymbols    Result = "BLOG_TITLE_MUST_HAVE_THESE_SYMBOLS"
	ArticleTitleIsMandatory          Result = "ARTICLE_TITLE_IS_MANDATORY"
	ArticleTitleMustBeBetween        Result = "ARTICLE_TITLE_MUST_BE_BETWEEN"
	ArticleTitleMustHaveTheseSymbols Result = "ARTICLE_TITLE_MUST_HAVE_THESE_SYMBOLS"
	ArticleContentIsMandatory        Result = "ARTICLE_CONTENT_IS_MANDATORY"
	ArticleContentMustBeBetween      Result = "ARTICLE_CONTENT_MUST_BE_BETWEEN"
	ArticleContentMustHaveSymbols    Result = "ARTICLE_CONTENT_MUST_HAVE_THESE_SYMBOLS"
	ImageFileIsMandatory             Result = "IMAGE_FILE_IS_MANDATORY"
	FileIsNotImage                   Result = "FILE_IS_NOT_IMAGE"
)

const titleSymbolsHint = "must have only alphabetical symbols and white spaces. Title must start and end with alphabetical symbols. Between words is allowed only one space"

var messages = map[Result]string{
	Success:                          "Success",
	NameIsMandatory:                  "Username is mandatory",
	NameMustBeBetween:                fmt.Sprintf("Username must be between %d and %d symbols", UsernameMinLength, UsernameMaxLength),
	NameMustHaveTheseSymbols:         "Username must have only alphabetical symbols ,numbers and underscore",
	PasswordIsMandatory:              "The password is mandatory",
	PasswordMustBeBetween:            fmt.Sprintf("Password must be between %d and %d symbols", PasswordMinLength, PasswordMaxLength),
	PasswordMustHaveTheseSymbols:     "Password must have only alphabetical symbols and numbers",
	EmailIsMandatory:                 "The email is mandatory",
	EmailIsNotValid:                  "Email is invalid",
	BlogTitleIsMandatory:             "Blog title is mandatory",
	BlogTitleMustBeBetween:           fmt.Sprintf("Blog title must be between %d and %d symbols", TitleMinLength, TitleMaxLength),
	BlogTitleMustHaveTheseSymbols:    "Blog title " + titleSymbolsHint,
	ArticleTitleIsMandatory:          "Article title is mandatory",
	ArticleTitleMustBeBetween:        fmt.Sprintf("Article title must be between %d and %d symbols", TitleMinLength, TitleMaxLength),
	ArticleTitleMustHaveTheseSymbols: "Article title " + titleSymbolsHint,
	ArticleContentIsMandatory:        "Article content is mandatory",
	ArticleContentMustBeBetween:      fmt.Sprintf("Article content must be between %d and %d symbols", ArticleContentMinLength, ArticleContentMaxLength),
	ArticleContentMustHaveSymbols:    "Article content must have only alphabetical symbols ,numbers, white spaces and symbols - (?!.,-+:;()\"'&#@$%)",
	ImageFileIsMandatory:             "Image file is mandatory",
	FileIsNotImage:                   "The given file is not image",
}

func (r Result) Message() string {
	if m, ok := messages[r]; ok {
		return m
	}
	return string(r)
}

func (r Result) OK() bool { return r == Success }
