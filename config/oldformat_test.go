package config

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/joeymnguyen/skill-bus/warnings"
)

func TestFilterOldFormat_DropsInjectOnlySubscriptions(t *testing.T) {
	w := warnings.New()
	subs := []Subscription{
		{Insert: "ctx", On: "foo"},
		{Inject: "legacy text", On: "bar"},
	}

	kept := FilterOldFormat(subs, w)

	assert.Len(t, kept, 1)
	assert.Equal(t, "ctx", kept[0].Insert)
	_, found := w.Find("old 'inject' format")
	assert.True(t, found)
}

func TestFilterOldFormat_NoOldFormatIsSilent(t *testing.T) {
	w := warnings.New()
	subs := []Subscription{{Insert: "ctx", On: "foo"}}

	kept := FilterOldFormat(subs, w)

	assert.Len(t, kept, 1)
	assert.Equal(t, 0, w.Len())
}
