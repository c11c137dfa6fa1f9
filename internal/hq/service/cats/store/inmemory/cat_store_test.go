package inmemory

import (
	"testing"

	"github.com/kiosk404/spycats/internal/hq/service/cats/domain/repo"
	"github.com/kiosk404/spycats/internal/hq/service/cats/store/storetest"
)

func TestCatStore(t *testing.T) {
	storetest.Run(t, func(t *testing.T) repo.CatRepository {
		return NewCatStore()
	})
}
