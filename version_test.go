package nexus_test

import (
	"testing"

	"github.com/iov-one/nexus"
	"github.com/stretchr/testify/assert"
)

func TestVersion(t *testing.T) {
	nexus.GitCommit = ""
	assert.Equal(t, "v0.1.0-dev", nexus.Version())

	nexus.GitCommit = "12345678"
	assert.Equal(t, "v0.1.0-dev 12345678", nexus.Version())
	nexus.GitCommit = ""
}
