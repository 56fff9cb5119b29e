package entities_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/zatekoja/wanderlust/internal/domain/entities"
)

func TestCategory_Valid(t *testing.T) {
	assert.Len(t, entities.Categories, 11)
	for _, c := range entities.Categories {
		assert.True(t, c.Valid(), c)
	}
	assert.False(t, entities.Category("beach").Valid())
	assert.False(t, entities.Category("").Valid())
}

func TestImage_ThumbnailURL(t *testing.T) {
	img := entities.Image{URL: "https://res.cloudinary.com/demo/image/upload/v1/wanderlust_listings/a.jpg"}
	assert.Equal(t, "https://res.cloudinary.com/demo/image/upload/w_200/v1/wanderlust_listings/a.jpg", img.ThumbnailURL())

	plain := entities.Image{URL: "https://images.example.com/a.jpg"}
	assert.Equal(t, plain.URL, plain.ThumbnailURL())
}

func TestListing_Ownership(t *testing.T) {
	l := &entities.Listing{OwnerID: "u1", Location: "Malibu", Country: "United States"}

	assert.True(t, l.IsOwnedBy("u1"))
	assert.False(t, l.IsOwnedBy("u2"))
	assert.False(t, (&entities.Listing{}).IsOwnedBy(""))
	assert.Equal(t, "Malibu, United States", l.Address())
}

func TestOneTimePasscode_IsExpired(t *testing.T) {
	now := time.Now()
	otp := &entities.OneTimePasscode{CreatedAt: now, ExpiresAt: now.Add(entities.OTPTTL)}

	assert.False(t, otp.IsExpired(now.Add(4*time.Minute)))
	assert.True(t, otp.IsExpired(now.Add(entities.OTPTTL)))
}

func TestSession_Flash(t *testing.T) {
	s := &entities.Session{}
	s.AddFlash(entities.FlashSuccess, "Review Created!")
	s.AddFlash(entities.FlashError, "first")
	s.AddFlash(entities.FlashError, "second")

	flash := s.TakeFlash()
	assert.Equal(t, []string{"Review Created!"}, flash[entities.FlashSuccess])
	assert.Equal(t, []string{"first", "second"}, flash[entities.FlashError])
	assert.Empty(t, s.TakeFlash())
}

func TestSession_LoginLogout(t *testing.T) {
	s := &entities.Session{}
	assert.False(t, s.IsAuthenticated())

	s.Login(&entities.User{ID: "u1", Username: "alice"})
	assert.True(t, s.IsAuthenticated())
	assert.Equal(t, "alice", s.Username)

	s.Logout()
	assert.False(t, s.IsAuthenticated())
}
