package i18n_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/qisthidev/Antigravity-Manager/pkg/errors"
	"github.com/qisthidev/Antigravity-Manager/pkg/i18n"
)

func TestNop(t *testing.T) {
	assert.Equal(t, "Unknown", i18n.Nop{}.Translate("common.unknown", "Unknown"))
}

func TestTranslatorFunc(t *testing.T) {
	tr := i18n.TranslatorFunc(func(key, fallback string) string { return strings.ToUpper(fallback) })
	assert.Equal(t, "X", tr.Translate("k", "x"))
}

func TestBundle(t *testing.T) {
	b := i18n.NewBundle(language.English)
	require.NoError(t, b.Add(language.English, map[string]string{
		"common.unknown": "Unknown",
		"only.english":   "English only",
	}))
	require.NoError(t, b.Add(language.Chinese, map[string]string{
		"common.unknown": "未知",
	}))

	tests := []struct {
		name     string
		locale   string
		key      string
		fallback string
		want     string
	}{
		{"english", "en", "common.unknown", "fb", "Unknown"},
		{"chinese", "zh", "common.unknown", "fb", "未知"},
		{"regional chinese", "zh-CN", "common.unknown", "fb", "未知"},
		{"falls back to default locale", "zh", "only.english", "fb", "English only"},
		{"unknown key", "zh", "nope", "fb", "fb"},
		{"empty key", "en", "", "fb", "fb"},
		{"unsupported locale", "fr", "common.unknown", "fb", "Unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := b.Localizer(tt.locale).Translate(tt.key, tt.fallback)
			assert.Equal(t, tt.want, got)
		})
	}

	assert.Equal(t, []language.Tag{language.English, language.Chinese}, b.Locales())
	assert.Equal(t, language.English, b.Localizer().Tag())
}

func TestBundlePercentIsLiteral(t *testing.T) {
	b := i18n.NewBundle(language.English)
	require.NoError(t, b.Add(language.English, map[string]string{
		"quota.remaining": "80% left",
		"quota.verb":      "%s and %d%%",
	}))
	require.NoError(t, b.Add(language.Chinese, map[string]string{
		"quota.remaining": "剩余 80%",
	}))

	assert.Equal(t, "80% left", b.Localizer("en").Translate("quota.remaining", "fb"))
	assert.Equal(t, "%s and %d%%", b.Localizer("en").Translate("quota.verb", "fb"))
	assert.Equal(t, "剩余 80%", b.Localizer("zh").Translate("quota.remaining", "fb"))
	assert.Equal(t, "%s and %d%%", b.Localizer("zh").Translate("quota.verb", "fb"))
}

func TestNilLocalizer(t *testing.T) {
	var l *i18n.Localizer
	assert.Equal(t, "fb", l.Translate("common.unknown", "fb"))
}

func TestLoadYAML(t *testing.T) {
	t.Run("valid document", func(t *testing.T) {
		b := i18n.NewBundle(language.English)
		doc := "locale: de\nmessages:\n  common.unknown: Unbekannt\n"
		require.NoError(t, b.LoadYAML(strings.NewReader(doc), "de.yaml"))
		assert.Equal(t, "Unbekannt", b.Localizer("de").Translate("common.unknown", "Unknown"))
	})

	t.Run("missing locale", func(t *testing.T) {
		b := i18n.NewBundle(language.English)
		err := b.LoadYAML(strings.NewReader("messages:\n  a: b\n"), "x.yaml")
		assert.True(t, errors.IsValidationError(err))
	})

	t.Run("bad tag", func(t *testing.T) {
		b := i18n.NewBundle(language.English)
		err := b.LoadYAML(strings.NewReader("locale: \"!!invalid\"\n"), "x.yaml")
		var parseErr *errors.ParseError
		assert.ErrorAs(t, err, &parseErr)
	})
}

func TestLoadFS(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ja.yaml"), []byte("locale: ja\nmessages:\n  common.unknown: 不明\n"), 0o644))

	b := i18n.NewBundle(language.English)
	require.NoError(t, b.LoadFS(os.DirFS(dir), "."))
	assert.Equal(t, "不明", b.Localizer("ja-JP").Translate("common.unknown", "Unknown"))
}

func TestLoadEmbedded(t *testing.T) {
	b, err := i18n.LoadEmbedded()
	require.NoError(t, err)

	assert.Equal(t, "未知", b.Localizer("zh").Translate("common.unknown", "Unknown"))
	assert.Equal(t, "Unknown", b.Localizer("en").Translate("common.unknown", "?"))
}
