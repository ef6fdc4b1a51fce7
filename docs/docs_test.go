package docs

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

func TestSwaggerDocIsValidJSON(t *testing.T) {
	raw, err := swag.ReadDoc(SwaggerInfo.InstanceName())
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))

	paths := doc["paths"].(map[string]any)
	for _, p := range []string{"/auth/register", "/auth/login", "/account/me", "/account/me/avatar", "/users"} {
		assert.Contains(t, paths, p)
	}
	assert.Equal(t, "/api", doc["basePath"])
}
