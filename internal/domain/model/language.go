package model

import (
	"fmt"
	"strings"

	"github.com/gosimple/slug"
)

type Language string

const (
	LanguageJavaScript Language = "JAVASCRIPT"
	LanguagePython     Language = "PYTHON"
	LanguageJava       Language = "JAVA"
	LanguageCPP        Language = "CPP"
	LanguageGo         Language = "GO"
)

var languageNames = map[Language]string{
	LanguageJavaScript: "JavaScript",
	LanguagePython:     "Python",
	LanguageJava:       "Java",
	LanguageCPP:        "C++",
	LanguageGo:         "Go",
}

// ParseLanguage accepts a language key in any case ("python", "PYTHON").
func ParseLanguage(s string) (Language, error) {
	l := Language(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := languageNames[l]; !ok {
		return "", fmt.Errorf("unsupported language %q", s)
	}
	return l, nil
}

func (l Language) Valid() bool {
	_, ok := languageNames[l]
	return ok
}

// Name is the human readable language name used in prompts.
func (l Language) Name() string {
	if name, ok := languageNames[l]; ok {
		return name
	}
	return string(l)
}

// Slug is the lowercase, URL-safe form of the language key.
func (l Language) Slug() string {
	return slug.Make(string(l))
}
