package i18n

import (
	"embed"
	"encoding/json"

	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"go.uber.org/zap"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

// Keys for every user-visible outcome. Handlers reference these, never
// hardcoded strings.
const (
	KeyNoThread       = "common.errors.no_thread"
	KeyInvalidTime    = "common.errors.invalid_time"
	KeyUserDeleted    = "common.errors.user_deleted"
	KeyNoMember       = "common.errors.no_member"
	KeyNoContent      = "common.errors.no_content"
	KeyNotOwnMessage  = "common.errors.not_own_message"
	KeyDeliveryFailed = "common.errors.delivery_failed"
	KeyUnknown        = "common.errors.unknown"
	KeyReasonRequired = "commands.block.errors.reason_required"
	KeyBlocked        = "common.success.blocked"
	KeyMessageSent    = "common.success.message_sent"
)

type Translator struct {
	bundle        *goi18n.Bundle
	defaultLocale string
	logger        *zap.SugaredLogger
}

func NewTranslator(defaultLocale string, logger *zap.Logger) (*Translator, error) {
	bundle := goi18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		return nil, err
	}
	for _, entry := range entries {
		data, err := localeFS.ReadFile("locales/" + entry.Name())
		if err != nil {
			return nil, err
		}
		if _, err := bundle.ParseMessageFileBytes(data, entry.Name()); err != nil {
			return nil, err
		}
	}

	return &Translator{
		bundle:        bundle,
		defaultLocale: defaultLocale,
		logger:        logger.Sugar(),
	}, nil
}

// Translate resolves key for locale, falling back to the default locale and
// finally to the key itself so a missing message never breaks an
// acknowledgment.
func (t *Translator) Translate(key, locale string, params map[string]interface{}) string {
	if locale == "" {
		locale = t.defaultLocale
	}

	localizer := goi18n.NewLocalizer(t.bundle, locale, t.defaultLocale)
	msg, err := localizer.Localize(&goi18n.LocalizeConfig{
		MessageID:    key,
		TemplateData: params,
	})
	if err != nil {
		t.logger.Warnw("Missing localization message", "key", key, "locale", locale, "error", err)
		return key
	}
	return msg
}
