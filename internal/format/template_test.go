package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubstitute(t *testing.T) {
	t.Run("все плейсхолдеры", func(t *testing.T) {
		got := Substitute("{prefix}{player}{suffix}: {message}", Values{
			PlaceholderPrefix:  "[A] ",
			PlaceholderPlayer:  "Steve",
			PlaceholderSuffix:  " *",
			PlaceholderMessage: "hi",
		})
		assert.Equal(t, "[A] Steve *: hi", got)
	})

	t.Run("отсутствующие значения заменяются пустой строкой", func(t *testing.T) {
		assert.Equal(t, "Steve", Substitute("{prefix}{player}", Values{PlaceholderPlayer: "Steve"}))
	})

	t.Run("подставленный текст повторно не разбирается", func(t *testing.T) {
		got := Substitute("{player}: {message}", Values{
			PlaceholderPlayer:  "Steve",
			PlaceholderMessage: "{prefix}",
		})
		assert.Equal(t, "Steve: {prefix}", got)
	})

	t.Run("неизвестные плейсхолдеры остаются", func(t *testing.T) {
		assert.Equal(t, "{world}", Substitute("{world}", Values{}))
	})
}

func TestSplitAtName(t *testing.T) {
	before, after, ok := SplitAtName("{prefix}{player}{suffix}")
	assert.True(t, ok)
	assert.Equal(t, "{prefix}", before)
	assert.Equal(t, "{suffix}", after)

	before, after, ok = SplitAtName("<gray>{displayname} | {suffix}")
	assert.True(t, ok)
	assert.Equal(t, "<gray>", before)
	assert.Equal(t, " | {suffix}", after)

	before, _, ok = SplitAtName("{prefix}")
	assert.False(t, ok)
	assert.Equal(t, "{prefix}", before)
}

func TestColorTag(t *testing.T) {
	assert.Equal(t, "<red>", ColorTag("red"))
	assert.Equal(t, "", ColorTag("  "))
}
