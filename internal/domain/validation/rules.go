package validation

import "github.com/oksasatya/go-ddd-blogs/internal/domain/dto"

// notNil builds a presence rule for a pointer field.
func notNil[T any](field func(T) *string, fail Result) Rule[T] {
	return func(v T) Result {
		if field(v) == nil {
			return fail
		}
		return Success
	}
}

func lengthRule[T any](field func(T) *string, min, max int, fail Result) Rule[T] {
	return func(v T) Result {
		if !lengthBetween(*field(v), min, max) {
			return fail
		}
		return Success
	}
}

func matchRule[T any](field func(T) *string, ok func(string) bool, fail Result) Rule[T] {
	return func(v T) Result {
		if !ok(*field(v)) {
			return fail
		}
		return Success
	}
}

func regUsername(r dto.RegisterRequest) *string { return r.Username }
func regEmail(r dto.RegisterRequest) *string    { return r.Email }
func regPassword(r dto.RegisterRequest) *string { return r.Password }
func logEmail(r dto.LoginRequest) *string       { return r.Email }
func logPassword(r dto.LoginRequest) *string    { return r.Password }
func blogTitle(r dto.BlogRequest) *string       { return r.Title }
func artTitle(r dto.ArticleRequest) *string     { return r.Title }
func artContent(r dto.ArticleRequest) *string   { return r.Content }

var registerChain = Chain(
	notNil(regUsername, NameIsMandatory),
	lengthRule(regUsername, UsernameMinLength, UsernameMaxLength, NameMustBeBetween),
	matchRule(regUsername, validUsername, NameMustHaveTheseSymbols),
	notNil(regEmail, EmailIsMandatory),
	matchRule(regEmail, validEmail, EmailIsNotValid),
	notNil(regPassword, PasswordIsMandatory),
	lengthRule(regPassword, PasswordMinLength, PasswordMaxLength, PasswordMustBeBetween),
	matchRule(regPassword, validPassword, PasswordMustHaveTheseSymbols),
)

var loginChain = Chain(
	notNil(logEmail, EmailIsMandatory),
	matchRule(logEmail, validEmail, EmailIsNotValid),
	notNil(logPassword, PasswordIsMandatory),
	lengthRule(logPassword, PasswordMinLength, PasswordMaxLength, PasswordMustBeBetween),
	matchRule(logPassword, validPassword, PasswordMustHaveTheseSymbols),
)

var blogChain = Chain(
	notNil(blogTitle, BlogTitleIsMandatory),
	lengthRule(blogTitle, TitleMinLength, TitleMaxLength, BlogTitleMustBeBetween),
	matchRule(blogTitle, validTitle, BlogTitleMustHaveTheseSymbols),
)

var articleChain = Chain(
	notNil(artTitle, ArticleTitleIsMandatory),
	lengthRule(artTitle, TitleMinLength, TitleMaxLength, ArticleTitleMustBeBetween),
	matchRule(artTitle, validTitle, ArticleTitleMustHaveTheseSymbols),
	notNil(artContent, ArticleContentIsMandatory),
	lengthRule(artContent, ArticleContentMinLength, ArticleContentMaxLength, ArticleContentMustBeBetween),
	matchRule(artContent, validContent, ArticleContentMustHaveSymbols),
	imagePresent,
	imageExtension,
)

func imagePresent(r dto.ArticleRequest) Result {
	if r.File == nil || r.File.Filename == "" {
		return ImageFileIsMandatory
	}
	return Success
}

func imageExtension(r dto.ArticleRequest) Result {
	if !validImageName(r.File.Filename) {
		return FileIsNotImage
	}
	return Success
}

func ValidateRegister(r dto.RegisterRequest) Result { return registerChain(r) }

func ValidateLogin(r dto.LoginRequest) Result { return loginChain(r) }

func ValidateBlog(r dto.BlogRequest) Result { return blogChain(r) }

func ValidateArticle(r dto.ArticleRequest) Result { return articleChain(r) }
