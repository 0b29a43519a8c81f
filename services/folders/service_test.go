package folders

import (
	"testing"

	"github.com/jotapp/jot/services/notes"
	"github.com/jotapp/jot/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupService(t *testing.T) (*Service, *notes.Service) {
	db := testutils.SetupTestDB(t, &Folder{}, &notes.Note{})
	notesSvc := notes.NewService(db, nil)
	return NewService(db, notesSvc, nil), notesSvc
}

func TestService_Create(t *testing.T) {
	svc, _ := setupService(t)

	t.Run("with color", func(t *testing.T) {
		folder, err := svc.Create(1, "Work", "#ff0000")
		require.NoError(t, err)
		assert.Equal(t, "Work", folder.Name)
		assert.Equal(t, "#ff0000", folder.Color)
	})

	t.Run("default color", func(t *testing.T) {
		folder, err := svc.Create(1, "Home", "")
		require.NoError(t, err)
		assert.Equal(t, DefaultColor, folder.Color)
	})

	t.Run("name required", func(t *testing.T) {
		_, err := svc.Create(1, "   ", "")
		assert.ErrorIs(t, err, ErrNameRequired)
	})
}

func TestService_List(t *testing.T) {
	svc, _ := setupService(t)

	_, err := svc.Create(1, "First", "")
	require.NoError(t, err)
	_, err = svc.Create(1, "Second", "")
	require.NoError(t, err)
	_, err = svc.Create(2, "Not yours", "")
	require.NoError(t, err)

	result, err := svc.List(1)
	require.NoError(t, err)
	require.Len(t, result, 2)
	assert.Equal(t, "First", result[0].Name)
	assert.Equal(t, "Second", result[1].Name)
}

func TestService_Update(t *testing.T) {
	t.Run("recolor", func(t *testing.T) {
		svc, _ := setupService(t)
		folder, err := svc.Create(1, "Work", "")
		require.NoError(t, err)

		color := "#00ff00"
		updated, err := svc.Update(1, folder.ID, UpdateInput{Color: &color})
		require.NoError(t, err)
		assert.Equal(t, "#00ff00", updated.Color)
		assert.Equal(t, "Work", updated.Name)
	})

	t.Run("rename moves the notes along", func(t *testing.T) {
		svc, notesSvc := setupService(t)
		folder, err := svc.Create(1, "Work", "")
		require.NoError(t, err)

		_, err = notesSvc.Create(1, notes.CreateInput{Title: "One", Folder: "Work"})
		require.NoError(t, err)
		_, err = notesSvc.Create(1, notes.CreateInput{Title: "Two", Folder: "Work"})
		require.NoError(t, err)

		name := "Office"
		updated, err := svc.Update(1, folder.ID, UpdateInput{Name: &name})
		require.NoError(t, err)
		assert.Equal(t, "Office", updated.Name)

		moved, err := notesSvc.List(1, notes.ListOptions{Folder: "Office"})
		require.NoError(t, err)
		assert.Len(t, moved, 2)

		old, err := notesSvc.List(1, notes.ListOptions{Folder: "Work"})
		require.NoError(t, err)
		assert.Empty(t, old)
	})

	t.Run("rename to empty is rejected", func(t *testing.T) {
		svc, _ := setupService(t)
		folder, err := svc.Create(1, "Work", "")
		require.NoError(t, err)

		name := "   "
		_, err = svc.Update(1, folder.ID, UpdateInput{Name: &name})
		assert.ErrorIs(t, err, ErrNameRequired)
	})

	t.Run("other user cannot update", func(t *testing.T) {
		svc, _ := setupService(t)
		folder, err := svc.Create(1, "Work", "")
		require.NoError(t, err)

		name := "hijacked"
		_, err = svc.Update(2, folder.ID, UpdateInput{Name: &name})
		assert.ErrorIs(t, err, ErrNotOwner)
	})
}

func TestService_Delete(t *testing.T) {
	t.Run("notes fall back to the default folder", func(t *testing.T) {
		svc, notesSvc := setupService(t)
		folder, err := svc.Create(1, "Work", "")
		require.NoError(t, err)

		_, err = notesSvc.Create(1, notes.CreateInput{Title: "One", Folder: "Work"})
		require.NoError(t, err)

		require.NoError(t, svc.Delete(1, folder.ID))

		_, err = svc.Get(1, folder.ID)
		assert.ErrorIs(t, err, ErrFolderNotFound)

		result, err := notesSvc.List(1, notes.ListOptions{Folder: notes.DefaultFolder})
		require.NoError(t, err)
		require.Len(t, result, 1)
		assert.Equal(t, "One", result[0].Title)
	})

	t.Run("missing folder", func(t *testing.T) {
		svc, _ := setupService(t)
		assert.ErrorIs(t, svc.Delete(1, 9999), ErrFolderNotFound)
	})

	t.Run("other user cannot delete", func(t *testing.T) {
		svc, _ := setupService(t)
		folder, err := svc.Create(1, "Work", "")
		require.NoError(t, err)

		assert.ErrorIs(t, svc.Delete(2, folder.ID), ErrNotOwner)
	})
}
