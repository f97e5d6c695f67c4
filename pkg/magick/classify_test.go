package magick

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		output   string
		wantKind error
	}{
		{
			name:     "empty output is success",
			output:   "",
			wantKind: nil,
		},
		{
			name:     "binary missing",
			output:   "sh: 1: identify: command not found\n",
			wantKind: ErrBinaryNotFound,
		},
		{
			name:     "input file missing",
			output:   "convert: No such file or directory @ error/blob.c/OpenBlob/2924.\n",
			wantKind: ErrInputFileMissing,
		},
		{
			name:     "no image produced",
			output:   "convert: Request did not return an image.\n",
			wantKind: ErrNoImageProduced,
		},
		{
			name:     "cannot open input",
			output:   "mogrify: unable to open image 'a.jpg': Permission denied\n",
			wantKind: ErrCannotOpenInput,
		},
		{
			name:     "match anywhere in text with unrelated trailing content",
			output:   "warning: something\nmogrify: unable to open image 'x'\nmore noise",
			wantKind: ErrCannotOpenInput,
		},
		{
			name:     "first matching rule wins over a later one",
			output:   "convert: No such file, also unable to open image 'x'\n",
			wantKind: ErrInputFileMissing,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := classify(tt.output)
			if tt.wantKind == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantKind)
		})
	}
}

func TestClassify_UnclassifiedCarriesLiteralText(t *testing.T) {
	t.Parallel()

	output := "convert: some warning\n"
	err := classify(output)
	require.Error(t, err)

	var unclassified *UnclassifiedError
	require.ErrorAs(t, err, &unclassified)
	assert.Equal(t, output, unclassified.Output)

	// Not one of the known kinds.
	for _, kind := range []error{ErrBinaryNotFound, ErrInputFileMissing, ErrNoImageProduced, ErrCannotOpenInput} {
		assert.False(t, errors.Is(err, kind))
	}
}

func TestClassifyKnown_NonEmptyUnmatchedIsNotAnError(t *testing.T) {
	t.Parallel()

	// Raw-output operations treat unmatched text as the result, not a
	// failure; only the fixed rules signal errors for them.
	assert.NoError(t, classifyKnown("Version: ImageMagick 6.9.11-60\n"))
	assert.ErrorIs(t, classifyKnown("identify: No such file\n"), ErrInputFileMissing)
}
