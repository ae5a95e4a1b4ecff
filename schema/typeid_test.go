package schema

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseTypeIDWrapped(t *testing.T) {
	parsed := ParseTypeID("com.example.shortcuts.com.agiletortoise.Drafts4.addto.DraftsAddMode")

	require.True(t, parsed.ThirdParty)
	require.Equal(t, parsed.Namespace, "com.example.shortcuts")
	require.Equal(t, parsed.Bundle, "com.agiletortoise.Drafts4")
	require.Equal(t, parsed.Category, "addto")
	require.Equal(t, parsed.Name, "DraftsAddMode")
	require.True(t, parsed.IsEnum)
	require.False(t, parsed.IsEntity)
}

func TestParseTypeIDFirstParty(t *testing.T) {
	parsed := ParseTypeID("com.example.Music.LibraryItemEntity")

	require.False(t, parsed.ThirdParty)
	require.Equal(t, parsed.Bundle, "com.example.Music")
	require.Equal(t, parsed.Name, "LibraryItemEntity")
	require.True(t, parsed.IsEntity)
}

func TestParseTypeIDSimple(t *testing.T) {
	parsed := ParseTypeID("NoteEntity")
	require.Equal(t, parsed.Name, "NoteEntity")
	require.Empty(t, parsed.Bundle)
	require.True(t, parsed.IsEntity)

	parsed = ParseTypeID("public.folder")
	require.Equal(t, parsed.Namespace, "public")
	require.Equal(t, parsed.Name, "folder")
}

func TestParseTypeIDEmpty(t *testing.T) {
	parsed := ParseTypeID("")
	require.Equal(t, parsed, TypeID{})
}

func TestIsComplexTypeID(t *testing.T) {
	require.True(t, IsComplexTypeID("com.example.shortcuts.com.agiletortoise.Drafts4.addto.DraftsAddMode"))
	require.True(t, IsComplexTypeID("com.example.notes.folders.FolderEntity"))

	require.False(t, IsComplexTypeID(""))
	require.False(t, IsComplexTypeID("NoteEntity"))
	require.False(t, IsComplexTypeID("public.folder"))
	require.False(t, IsComplexTypeID("com.example.Music"))
}
