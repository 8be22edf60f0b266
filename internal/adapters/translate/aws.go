package translate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awstranslate "github.com/aws/aws-sdk-go-v2/service/translate"
	"github.com/aws/aws-sdk-go-v2/service/translate/types"
	"github.com/sirupsen/logrus"

	"movie-reviews-api/internal/adapters/retry"
)

// TranslateAPI is the subset of the AWS Translate client used here
type TranslateAPI interface {
	TranslateText(ctx context.Context, params *awstranslate.TranslateTextInput, optFns ...func(*awstranslate.Options)) (*awstranslate.TranslateTextOutput, error)
}

var _ TranslateAPI = (*awstranslate.Client)(nil)

// AWSTranslator implements Translator on Amazon Translate
type AWSTranslator struct {
	api    TranslateAPI
	logger *logrus.Logger
}

// NewAWSTranslator creates a translator over an AWS Translate client
func NewAWSTranslator(api TranslateAPI, logger *logrus.Logger) *AWSTranslator {
	if logger == nil {
		logger = logrus.New()
	}
	return &AWSTranslator{api: api, logger: logger}
}

// NewClient builds the AWS Translate client from a loaded SDK config
func NewClient(cfg aws.Config) *awstranslate.Client {
	return awstranslate.NewFromConfig(cfg)
}

// Translate implements Translator
func (t *AWSTranslator) Translate(ctx context.Context, text, source, target string) (*Result, error) {
	start := time.Now()
	out, err := t.api.TranslateText(ctx, &awstranslate.TranslateTextInput{
		Text:               aws.String(text),
		SourceLanguageCode: aws.String(source),
		TargetLanguageCode: aws.String(target),
	})

	entry := t.logger.WithFields(logrus.Fields{
		"source":   source,
		"target":   target,
		"chars":    len(text),
		"duration": time.Since(start),
	})
	if err != nil {
		entry.WithError(err).Warn("Translation call failed")
		return nil, &Error{Source: source, Target: target, Err: classify(err)}
	}
	entry.Debug("Translation call executed")

	result := &Result{
		Text:           aws.ToString(out.TranslatedText),
		SourceLanguage: aws.ToString(out.SourceLanguageCode),
		TargetLanguage: aws.ToString(out.TargetLanguageCode),
	}
	if result.SourceLanguage == "" {
		result.SourceLanguage = source
	}
	if result.TargetLanguage == "" {
		result.TargetLanguage = target
	}
	return result, nil
}

// classify tags service errors: capacity problems are transient, input
// problems are ErrInvalidInput
func classify(err error) error {
	var (
		tooMany     *types.TooManyRequestsException
		unavailable *types.ServiceUnavailableException
		internal    *types.InternalServerException
		pair        *types.UnsupportedLanguagePairException
		confidence  *types.DetectedLanguageLowConfidenceException
		invalid     *types.InvalidRequestException
		size        *types.TextSizeLimitExceededException
	)

	switch {
	case errors.As(err, &tooMany), errors.As(err, &unavailable), errors.As(err, &internal):
		return retry.Transient(fmt.Errorf("%w: %w", ErrUnavailable, err))
	case errors.As(err, &pair), errors.As(err, &confidence), errors.As(err, &invalid), errors.As(err, &size):
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	default:
		return err
	}
}
