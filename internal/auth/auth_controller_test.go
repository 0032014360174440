package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmailMatchesDomain(t *testing.T) {
	assert.True(t, emailMatchesDomain("coach@nsml.ca", "nsml.ca"))
	assert.True(t, emailMatchesDomain("coach@NSML.CA", "nsml.ca"))
	assert.False(t, emailMatchesDomain("coach@gmail.com", "nsml.ca"))
	assert.False(t, emailMatchesDomain("coach@sub.nsml.ca", "nsml.ca"))
	assert.False(t, emailMatchesDomain("coach@nsml.ca", ""))
	assert.False(t, emailMatchesDomain("not-an-email", "nsml.ca"))
}
