package s3_test

import (
	"hotel/infras/s3"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPublicURL(t *testing.T) {
	assert.Equal(t, "https://cdn.example.com/folios/2024/RES1.json", s3.PublicURL("https://cdn.example.com/", "/folios/2024/RES1.json"))
	assert.Equal(t, "https://cdn.example.com/folios/2024/RES1.json", s3.PublicURL("https://cdn.example.com", "folios/2024/RES1.json"))
}
