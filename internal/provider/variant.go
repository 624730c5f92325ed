package provider

import (
	"fmt"
	"strings"
	"time"

	"github.com/phrazzld/scry-notes/internal/config"
	"github.com/phrazzld/scry-notes/internal/question"
)

// Built-in provider names.
const (
	NameOpenAI       = "openai"
	NameHuggingFace  = "huggingface"
	NameMeaningCloud = "meaningcloud"
	NameGemini       = "gemini"
)

// DefaultMinLength is the canonical minimum trimmed note length.
const DefaultMinLength = 50

// Variant is the configuration record that distinguishes one backend from
// another. Everything else about a provider is shared.
type Variant struct {
	Name        string
	DisplayName string
	Description string

	// CredentialKey is looked up in the credential source
	CredentialKey string

	// DefaultCredential is used when the source has no value. Empty means the
	// variant is unconfigured without a credential.
	DefaultCredential string

	SummaryEndpoint string

	// QuestionEndpoint empty means flashcard questions are generated locally
	QuestionEndpoint string

	MinLength        int
	SummarySentences int
	FlashcardCap     int
	QuestionStyle    question.Style

	// SummaryPrefix is prepended to successful backend summaries
	SummaryPrefix string

	MaxRetries     int
	RetryBaseDelay time.Duration
}

// Validate checks that the variant can back a Provider.
func (v Variant) Validate() error {
	switch {
	case strings.TrimSpace(v.Name) == "":
		return fmt.Errorf("%w: name is required", ErrInvalidVariant)
	case strings.TrimSpace(v.CredentialKey) == "":
		return fmt.Errorf("%w: %s: credential key is required", ErrInvalidVariant, v.Name)
	case v.MinLength < 0:
		return fmt.Errorf("%w: %s: min length must not be negative", ErrInvalidVariant, v.Name)
	case v.SummarySentences < 1:
		return fmt.Errorf("%w: %s: summary sentences must be positive", ErrInvalidVariant, v.Name)
	case v.FlashcardCap < 1:
		return fmt.Errorf("%w: %s: flashcard cap must be positive", ErrInvalidVariant, v.Name)
	case v.MaxRetries < 0:
		return fmt.Errorf("%w: %s: max retries must not be negative", ErrInvalidVariant, v.Name)
	}
	if _, err := question.ParseStyle(string(v.QuestionStyle)); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrInvalidVariant, v.Name, err)
	}
	return nil
}

// WithOverride returns a copy of v with the non-zero fields of o applied.
func (v Variant) WithOverride(o config.VariantOverride) (Variant, error) {
	if o.CredentialKey != "" {
		v.CredentialKey = o.CredentialKey
	}
	if o.MinLength > 0 {
		v.MinLength = o.MinLength
	}
	if o.SummarySentences > 0 {
		v.SummarySentences = o.SummarySentences
	}
	if o.FlashcardCap > 0 {
		v.FlashcardCap = o.FlashcardCap
	}
	if o.QuestionStyle != "" {
		style, err := question.ParseStyle(o.QuestionStyle)
		if err != nil {
			return Variant{}, fmt.Errorf("%w: %s: %w", ErrInvalidVariant, v.Name, err)
		}
		v.QuestionStyle = style
	}
	if o.MaxRetries > 0 {
		v.MaxRetries = o.MaxRetries
	}
	if o.RetryDelayMillis > 0 {
		v.RetryBaseDelay = time.Duration(o.RetryDelayMillis) * time.Millisecond
	}
	if o.SummaryEndpoint != "" {
		v.SummaryEndpoint = o.SummaryEndpoint
	}
	if o.QuestionEndpoint != "" {
		v.QuestionEndpoint = o.QuestionEndpoint
	}
	return v, v.Validate()
}

// OpenAI is the general-purpose variant. Questions are generated locally.
func OpenAI() Variant {
	return Variant{
		Name:             NameOpenAI,
		DisplayName:      "OpenAI",
		Description:      "OpenAI GPT models for summarization and question generation",
		CredentialKey:    "OPENAI_API_KEY",
		SummaryEndpoint:  "https://api.openai.com/v1/chat/completions",
		MinLength:        DefaultMinLength,
		SummarySentences: 3,
		FlashcardCap:     5,
		QuestionStyle:    question.StyleDetailed,
		SummaryPrefix:    "Summary: ",
		RetryBaseDelay:   time.Second,
	}
}

// HuggingFace uses the Inference API for both summaries and questions.
func HuggingFace() Variant {
	return Variant{
		Name:             NameHuggingFace,
		DisplayName:      "Hugging Face",
		Description:      "facebook/bart-large-cnn summaries and valhalla/t5-base-qa-qg-hl questions",
		CredentialKey:    "HUGGINGFACE_API_KEY",
		SummaryEndpoint:  "https://api-inference.huggingface.co/models/facebook/bart-large-cnn",
		QuestionEndpoint: "https://api-inference.huggingface.co/models/valhalla/t5-base-qa-qg-hl",
		MinLength:        DefaultMinLength,
		SummarySentences: 3,
		FlashcardCap:     3,
		QuestionStyle:    question.StyleCompact,
		RetryBaseDelay:   time.Second,
	}
}

// MeaningCloud summarizes through summarization-1.0 and ships with a demo
// key, so it is configured out of the box.
func MeaningCloud() Variant {
	return Variant{
		Name:              NameMeaningCloud,
		DisplayName:       "MeaningCloud",
		Description:       "MeaningCloud Summarization API (extractive, sentence based)",
		CredentialKey:     "MEANINGCLOUD_API_KEY",
		DefaultCredential: "8rnXsV4EEeK9958DGPmCnQrThQqDdVAY",
		SummaryEndpoint:   "https://api.meaningcloud.com/summarization-1.0",
		MinLength:         DefaultMinLength,
		SummarySentences:  3,
		FlashcardCap:      5,
		QuestionStyle:     question.StyleDetailed,
		RetryBaseDelay:    time.Second,
	}
}

// Gemini uses Google's generative models for summaries and questions.
func Gemini(modelName string) Variant {
	return Variant{
		Name:             NameGemini,
		DisplayName:      "Gemini",
		Description:      "Google Gemini generative models",
		CredentialKey:    "GEMINI_API_KEY",
		SummaryEndpoint:  modelName,
		QuestionEndpoint: modelName,
		MinLength:        DefaultMinLength,
		SummarySentences: 3,
		FlashcardCap:     5,
		QuestionStyle:    question.StyleDetailed,
		MaxRetries:       2,
		RetryBaseDelay:   time.Second,
	}
}

// Builtins returns the built-in variants in display order.
func Builtins(geminiModel string) []Variant {
	return []Variant{OpenAI(), HuggingFace(), MeaningCloud(), Gemini(geminiModel)}
}
