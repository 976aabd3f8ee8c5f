package guide

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tarea-dev/tarea/internal/testutil"
)

func TestGuide_Raw(t *testing.T) {
	cmd := GuideCmd()
	cmd.SetArgs([]string{"--raw"})

	var err error
	output := testutil.CaptureOutput(t, func() {
		err = cmd.Execute()
	})

	assert.NoError(t, err)
	// Raw mode emits the markdown untouched
	assert.True(t, strings.HasPrefix(output, "# tarea workflow"))
	assert.Contains(t, output, "tarea task advance")
	assert.Contains(t, output, "TAREA_PROJECT")
}

func TestGuide_Rendered(t *testing.T) {
	cmd := GuideCmd()
	cmd.SetArgs([]string{})

	var err error
	output := testutil.CaptureOutput(t, func() {
		err = cmd.Execute()
	})

	assert.NoError(t, err)
	// Rendered or not, the content must come through
	assert.Contains(t, output, "tarea workflow")
	assert.Contains(t, output, "Quick start")
}
