package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestProgressService_Entries(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	svc := f.progressService()
	uid, profile := f.user(2000)

	fat := 18.5
	first, err := svc.CreateEntry(ctx, uid, ProgressInput{RecordedAt: at(2024, 1, 1, 7), WeightKg: 81, BodyFatPercent: &fat})
	require.NoError(t, err)
	assert.Equal(t, profile.ID, first.ProfileID)
	second, err := svc.CreateEntry(ctx, uid, ProgressInput{WeightKg: 80})
	require.NoError(t, err)
	assert.Equal(t, f.now, second.RecordedAt)

	entries, err := svc.ListEntries(ctx, uid)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, second.ID, entries[0].ID, "newest first")

	_, err = svc.CreateEntry(ctx, uid, ProgressInput{WeightKg: 0})
	assert.ErrorIs(t, err, ErrValidation)
	bad := 120.0
	_, err = svc.CreateEntry(ctx, uid, ProgressInput{WeightKg: 80, BodyFatPercent: &bad})
	assert.ErrorIs(t, err, ErrValidation)

	stranger, _ := f.user(2000)
	_, err = svc.GetEntry(ctx, stranger, first.ID)
	assert.ErrorIs(t, err, ErrProgressAccessDenied)
	_, err = svc.GetEntry(ctx, uid, primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrProgressNotFound)
}

func TestProgressService_PhotoFlow(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	svc := f.progressService()
	uid, profile := f.user(2000)

	entry, err := svc.CreateEntry(ctx, uid, ProgressInput{WeightKg: 80})
	require.NoError(t, err)

	_, err = svc.GetPhotoDownloadURL(ctx, uid, entry.ID)
	assert.ErrorIs(t, err, ErrPhotoNotFound)

	_, err = svc.RequestPhotoUploadURL(ctx, uid, entry.ID, "video/mp4")
	assert.ErrorIs(t, err, ErrUnsupportedContentType)

	upload, err := svc.RequestPhotoUploadURL(ctx, uid, entry.ID, "image/jpeg")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(upload.ObjectKey, "progress/"+profile.ID.Hex()+"/"+entry.ID.Hex()+"/"))
	assert.True(t, strings.HasSuffix(upload.ObjectKey, ".jpeg"))
	assert.Contains(t, upload.UploadURL, upload.ObjectKey)

	// Not uploaded yet.
	_, err = svc.ConfirmPhoto(ctx, uid, entry.ID, upload.ObjectKey, "image/jpeg")
	assert.ErrorIs(t, err, ErrPhotoNotUploaded)

	prefix := "progress/" + profile.ID.Hex() + "/" + entry.ID.Hex() + "/"
	for _, key := range []string{
		"progress/elsewhere/photo.jpeg",
		prefix + "../../" + primitive.NewObjectID().Hex() + "/x.jpeg",
		prefix + "nested/photo.jpeg",
		prefix + "./photo.jpeg",
		prefix,
	} {
		f.storage.put(key)
		_, err = svc.ConfirmPhoto(ctx, uid, entry.ID, key, "image/jpeg")
		assert.ErrorIs(t, err, ErrObjectKeyMismatch, key)
	}

	f.storage.put(upload.ObjectKey)
	confirmed, err := svc.ConfirmPhoto(ctx, uid, entry.ID, upload.ObjectKey, "image/jpeg")
	require.NoError(t, err)
	assert.True(t, confirmed.HasPhoto())
	assert.Equal(t, "image/jpeg", confirmed.PhotoType)

	url, err := svc.GetPhotoDownloadURL(ctx, uid, entry.ID)
	require.NoError(t, err)
	assert.Contains(t, url, upload.ObjectKey)

	// A replacement photo removes the previous object.
	next, err := svc.RequestPhotoUploadURL(ctx, uid, entry.ID, "image/png")
	require.NoError(t, err)
	f.storage.put(next.ObjectKey)
	_, err = svc.ConfirmPhoto(ctx, uid, entry.ID, next.ObjectKey, "image/png")
	require.NoError(t, err)
	assert.Equal(t, []string{upload.ObjectKey}, f.storage.deleted)
}

func TestProgressService_StorageFailure(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	svc := f.progressService()
	uid, _ := f.user(2000)

	entry, err := svc.CreateEntry(ctx, uid, ProgressInput{WeightKg: 80})
	require.NoError(t, err)

	f.storage.failURL = true
	_, err = svc.RequestPhotoUploadURL(ctx, uid, entry.ID, "image/png")
	assert.ErrorIs(t, err, ErrUploadURLError)
}
