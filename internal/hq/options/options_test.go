package options

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	genericoptions "github.com/kiosk404/spycats/internal/pkg/options"
	"github.com/kiosk404/spycats/internal/pkg/server"
)

func TestDefaultsAreValid(t *testing.T) {
	o := NewOptions()
	require.NoError(t, o.Complete())
	assert.Empty(t, o.Validate())
	assert.Equal(t, genericoptions.StoreInMemory, o.Store.Type)
}

func TestFlagsParse(t *testing.T) {
	o := NewOptions()
	fss := o.Flags()

	for _, name := range []string{"generic", "insecure serving", "store", "cors", "logs"} {
		assert.Contains(t, fss.Order, name)
	}

	require.NoError(t, fss.FlagSet("store").Parse([]string{"--store.type=sqlite", "--store.seed"}))
	require.NoError(t, fss.FlagSet("insecure serving").Parse([]string{"--insecure.bind-port=9090"}))
	assert.Equal(t, "sqlite", o.Store.Type)
	assert.True(t, o.Store.Seed)
	assert.Equal(t, 9090, o.InsecureServing.BindPort)
}

func TestValidateCollectsErrors(t *testing.T) {
	o := NewOptions()
	o.Store.Type = "redis"
	o.InsecureServing.BindPort = 70000
	o.CORS.AllowOrigins = []string{"localhost:3000"}
	assert.Len(t, o.Validate(), 3)
}

func TestApplyTo(t *testing.T) {
	o := NewOptions()
	o.InsecureServing.BindAddress = "0.0.0.0"
	o.InsecureServing.BindPort = 8081
	o.GenericServerRunOptions.EnableProfiling = true

	c := server.NewConfig()
	require.NoError(t, o.ApplyTo(c))
	assert.Equal(t, "0.0.0.0:8081", c.InsecureServing.Address)
	assert.True(t, c.EnableProfiling)
}

func TestString(t *testing.T) {
	assert.Contains(t, NewOptions().String(), `"store"`)
}
