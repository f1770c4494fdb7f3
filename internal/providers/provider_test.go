package providers

import (
	"testing"

	"github.com/rivalwatch/rival-watch-service/internal/teststubs"
)

func TestStubImplementsDataProvider(t *testing.T) {
	var _ DataProvider = (*teststubs.StubProvider)(nil)
}

func TestDecoratorsImplementDataProvider(t *testing.T) {
	var _ DataProvider = (*retryingProvider)(nil)
	var _ DataProvider = (*rateLimitedProvider)(nil)
}
