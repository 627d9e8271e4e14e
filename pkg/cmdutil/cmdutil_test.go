package cmdutil_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tuanvumaihuynh/cloudshop-etl/pkg/cmdutil"
	"github.com/tuanvumaihuynh/cloudshop-etl/pkg/zerror"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: cmdutil.ExitOK},
		{name: "plain", err: errors.New("boom"), want: cmdutil.ExitUnknown},
		{name: "connection", err: zerror.NewConnection("C", "m"), want: cmdutil.ExitConnection},
		{name: "wrapped transform", err: fmt.Errorf("run: %w", zerror.NewTransform("T", "m")), want: cmdutil.ExitTransform},
		{name: "publish", err: zerror.NewPublish("P", "m"), want: cmdutil.ExitPublish},
		{name: "validation", err: zerror.NewValidationFailed("V", "m"), want: cmdutil.ExitValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cmdutil.ExitCode(tt.err))
		})
	}
}
