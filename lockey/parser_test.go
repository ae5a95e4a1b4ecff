package lockey

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseVersionTaggedKey(t *testing.T) {
	p := Parse("photos_IncreaseWarmth_1.0.0_intent_title")

	require.Equal(t, p.Text, "Increase Warmth")
	require.True(t, p.Synthetic)
	require.Equal(t, p.OriginalKey, "photos_IncreaseWarmth_1.0.0_intent_title")
	require.Equal(t, p.Confidence, 0.95)
	require.Equal(t, p.Source, SourceParsedKey)
}

func TestParseVersionTaggedDescription(t *testing.T) {
	p := Parse("notes_CreateNote_2.1.0_intent_description")

	require.Equal(t, p.Text, "Create Note")
	require.Equal(t, p.Confidence, ConfidenceVersionTagged)
}

func TestParseEntityDisplayKey(t *testing.T) {
	p := Parse("photos_MemoryEntity_1.0.0_entity_type_display_representation")

	require.Equal(t, p.Text, "Memory")
	require.True(t, p.Synthetic)
	require.Equal(t, p.Confidence, ConfidenceEntityType)
	require.Equal(t, p.Source, SourceParsedKey)
}

func TestParseEntityDisplayKeyMultiWord(t *testing.T) {
	p := Parse("home_SmartLockEntity_1.0.0_entity_type_display_representation")

	require.Equal(t, p.Text, "Smart Lock")
	require.Equal(t, p.Confidence, ConfidenceEntityType)
}

func TestParseConstantCaseKey(t *testing.T) {
	p := Parse("CREATE_NOTE_INTENT_TITLE")

	require.Equal(t, p.Text, "Create Note")
	require.True(t, p.Synthetic)
	require.Equal(t, p.Confidence, ConfidenceConstantCase)
}

func TestParseParameterKey(t *testing.T) {
	p := Parse("reminders_CreateReminder_1.0.0_intent_parameter_dueDate_description")

	require.Equal(t, p.Text, "Due Date")
	require.Equal(t, p.Confidence, ConfidenceParameterKey)
}

func TestParseNaturalTextPassesThrough(t *testing.T) {
	for _, text := range []string{
		"",
		"Create Note",
		"Adds a new note to the selected folder.",
		"Increase Warmth",
	} {
		p := Parse(text)
		require.False(t, p.Synthetic, "Parse(%q)", text)
		require.Equal(t, p.Text, text)
		require.Equal(t, p.Source, SourceOriginal)
		require.Empty(t, p.OriginalKey)
	}
}

func TestParseUnrecognizedKeyFallsBack(t *testing.T) {
	key := "weird_key_with_entity_markers_but_no_shape"
	require.True(t, IsKey(key))

	p := Parse(key)
	require.True(t, p.Synthetic)
	require.Equal(t, p.Text, key)
	require.Equal(t, p.Confidence, ConfidenceNone)
	require.Equal(t, p.Source, SourceFallback)
}

func TestParseEmbeddedKeyCleaned(t *testing.T) {
	text := "Open photos_IncreaseWarmth_1.0.0_intent_title in editor"

	p := Parse(text)
	require.True(t, p.Synthetic)
	require.Equal(t, p.Text, "Open increase warmth in editor")
	require.Equal(t, p.Confidence, ConfidenceEmbedded)
	require.Equal(t, p.Source, SourceCleanedEmbedded)
	require.Equal(t, p.OriginalKey, text)
}

func TestParseIdempotent(t *testing.T) {
	// Feeding a parse result back in must not change it again.
	first := Parse("photos_IncreaseWarmth_1.0.0_intent_title")
	second := Parse(first.Text)

	require.False(t, second.Synthetic)
	require.Equal(t, second.Text, first.Text)
}

func TestIsKey(t *testing.T) {
	keys := []string{
		"photos_IncreaseWarmth_1.0.0_intent_title",
		"CREATE_NOTE_INTENT_TITLE",
		"notes_NoteEntity_1.0.0_entity_type_display_representation",
		"some_long_intent_parameter_key_description",
	}
	for _, k := range keys {
		require.True(t, IsKey(k), "IsKey(%q)", k)
	}

	notKeys := []string{
		"",
		"Create Note",
		"Adds a new note.",
		"notes",
		"A plain sentence with several words in it",
	}
	for _, k := range notKeys {
		require.False(t, IsKey(k), "IsKey(%q)", k)
	}
}

func TestKeyLikelihood(t *testing.T) {
	p := NewParser()

	require.Greater(t, p.KeyLikelihood("photos_IncreaseWarmth_1.0.0_intent_title"), 0.7)
	require.Greater(t, p.KeyLikelihood("CREATE_NOTE_INTENT_TITLE_EXTRA_LONG"), 0.3)
	require.Less(t, p.KeyLikelihood("Adds a new note to the folder"), 0.3)
	require.Equal(t, p.KeyLikelihood(""), 0.0)
}

func TestConfidenceLadderMonotonic(t *testing.T) {
	ladder := ConfidenceLadder()
	for i := 1; i < len(ladder); i++ {
		require.GreaterOrEqual(t, ladder[i-1], ladder[i])
	}
}

func TestParsedRender(t *testing.T) {
	p := Parse("photos_IncreaseWarmth_1.0.0_intent_title")
	rendered := p.Render()

	require.Equal(t, rendered["text"], "Increase Warmth")
	require.Equal(t, rendered["is_synthetic"], true)
	require.Equal(t, rendered["confidence"], 0.95)
	require.Equal(t, rendered["source"], "parsed_key")

	original := Parse("Create Note").Render()
	require.Equal(t, original["is_synthetic"], false)
	require.NotContains(t, original, "confidence")
	require.NotContains(t, original, "source")
}

func TestParsedJSONRoundTrip(t *testing.T) {
	p := Parse("photos_IncreaseWarmth_1.0.0_intent_title")

	data, err := p.MarshalJSON()
	require.NoError(t, err)

	var back Parsed
	require.NoError(t, back.UnmarshalJSON(data))
	require.Equal(t, back, p)
}
