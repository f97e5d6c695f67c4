package magick_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magicast/magicast/pkg/magick"
	"github.com/magicast/magicast/tests/testutil"
)

func TestTool_Convert_BuildsExpectedCommandLine(t *testing.T) {
	t.Parallel()

	mockExec := testutil.NewMockCommandExecutor()
	tool := magick.New(magick.WithExecutor(mockExec))

	opts := []magick.Option{
		magick.Bare("-verbose"),
		magick.Valued("-resize", ":value", magick.Bind("value", "50%")),
	}
	err := tool.Convert(context.Background(), "in.jpg", "out.jpg", opts, nil)
	require.NoError(t, err)

	require.Equal(t, 1, mockExec.CallCount())
	call := mockExec.RecordedCalls[0]
	assert.Equal(t, "sh", call.Command)
	assert.Equal(t, `convert -verbose "-resize 50%" "in.jpg" "out.jpg"`, call.CommandLine())
}

func TestTool_Convert_OutputOptionsBetweenFiles(t *testing.T) {
	t.Parallel()

	mockExec := testutil.NewMockCommandExecutor()
	tool := magick.New(magick.WithExecutor(mockExec))

	outputOpts := []magick.Option{
		magick.Valued("-quality", ":value", magick.Bind("value", 80)),
	}
	err := tool.Convert(context.Background(), "in.jpg", "out.jpg", nil, outputOpts)
	require.NoError(t, err)

	assert.Equal(t, `convert "in.jpg" "-quality 80" "out.jpg"`,
		mockExec.RecordedCalls[0].CommandLine())
}

func TestTool_Mogrify_ClassifiesKnownErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		stderr   string
		wantKind error
	}{
		{
			name:     "cannot open input",
			stderr:   "mogrify: unable to open image 'x.jpg': No such device\n",
			wantKind: magick.ErrCannotOpenInput,
		},
		{
			name:     "input file missing",
			stderr:   "mogrify: No such file or directory\n",
			wantKind: magick.ErrInputFileMissing,
		},
		{
			name:     "binary not found",
			stderr:   "sh: 1: mogrify: command not found\n",
			wantKind: magick.ErrBinaryNotFound,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			mockExec := testutil.NewMockCommandExecutor()
			mockExec.AddErrorOutput("mogrify", tt.stderr)
			tool := magick.New(magick.WithExecutor(mockExec))

			err := tool.Mogrify(context.Background(), "x.jpg")
			assert.ErrorIs(t, err, tt.wantKind)
		})
	}
}

func TestTool_Convert_UnmatchedOutputIsUnclassified(t *testing.T) {
	t.Parallel()

	mockExec := testutil.NewMockCommandExecutor()
	mockExec.AddOutputResponse("convert", "convert: some warning\n")
	tool := magick.New(magick.WithExecutor(mockExec))

	err := tool.Convert(context.Background(), "in.jpg", "out.jpg", nil, nil)

	var unclassified *magick.UnclassifiedError
	require.ErrorAs(t, err, &unclassified)
	assert.Equal(t, "convert: some warning\n", unclassified.Output)
}

func TestTool_IdentifyExplicit(t *testing.T) {
	t.Parallel()

	mockExec := testutil.NewMockCommandExecutor()
	mockExec.AddResponse("identify",
		testutil.IdentifyMockResponses{}.Explicit("a.jpg", 100, 50, "JPEG"))
	tool := magick.New(magick.WithExecutor(mockExec))

	md, err := tool.IdentifyExplicit(context.Background(), "a.jpg",
		magick.FieldFilename, magick.FieldWidth, magick.FieldHeight, magick.FieldType)
	require.NoError(t, err)

	assert.Equal(t,
		`identify -format "filename: %f--SEP--width: %w--SEP--height: %h--SEP--type: %m" "a.jpg"`,
		mockExec.RecordedCalls[0].CommandLine())

	assert.Equal(t, magick.Metadata{
		magick.FieldFilename: "a.jpg",
		magick.FieldWidth:    100,
		magick.FieldHeight:   50,
		magick.FieldType:     "JPEG",
	}, md)
}

func TestTool_IdentifyExplicit_UnknownFieldSpawnsNothing(t *testing.T) {
	t.Parallel()

	mockExec := testutil.NewMockCommandExecutor()
	tool := magick.New(magick.WithExecutor(mockExec))

	_, err := tool.IdentifyExplicit(context.Background(), "a.jpg", magick.Field("bogus"))
	assert.ErrorIs(t, err, magick.ErrUnknownField)
	assert.Equal(t, 0, mockExec.CallCount())
}

func TestTool_Montage_QuotesEveryInputFile(t *testing.T) {
	t.Parallel()

	mockExec := testutil.NewMockCommandExecutor()
	tool := magick.New(magick.WithExecutor(mockExec))

	err := tool.Montage(context.Background(), []string{"a.jpg", "b with space.jpg"}, "out.png")
	require.NoError(t, err)

	assert.Equal(t, `montage "a.jpg" "b with space.jpg" "out.png"`,
		mockExec.RecordedCalls[0].CommandLine())
}

func TestTool_Composite(t *testing.T) {
	t.Parallel()

	mockExec := testutil.NewMockCommandExecutor()
	tool := magick.New(magick.WithExecutor(mockExec))

	opts := []magick.Option{
		magick.Valued("-gravity", ":value", magick.Bind("value", "southeast")),
	}
	err := tool.Composite(context.Background(), "logo.png", "photo.jpg", "out.jpg", opts...)
	require.NoError(t, err)

	assert.Equal(t, `composite "-gravity southeast" "logo.png" "photo.jpg" "out.jpg"`,
		mockExec.RecordedCalls[0].CommandLine())
}

func TestTool_Version(t *testing.T) {
	t.Parallel()

	mockExec := testutil.NewMockCommandExecutor()
	mockExec.AddResponse("identify -version", testutil.IdentifyMockResponses{}.Version())
	tool := magick.New(magick.WithExecutor(mockExec))

	banner, err := tool.Version(context.Background())
	require.NoError(t, err)
	assert.Contains(t, banner, "ImageMagick")
}

func TestTool_BinaryResolution(t *testing.T) {
	t.Parallel()

	t.Run("prefix prepends a driver binary", func(t *testing.T) {
		t.Parallel()

		mockExec := testutil.NewMockCommandExecutor()
		tool := magick.New(magick.WithExecutor(mockExec), magick.WithBinaryPrefix("gm"))

		_, err := tool.Version(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "gm identify -version", mockExec.RecordedCalls[0].CommandLine())
	})

	t.Run("path override beats prefix", func(t *testing.T) {
		t.Parallel()

		mockExec := testutil.NewMockCommandExecutor()
		tool := magick.New(
			magick.WithExecutor(mockExec),
			magick.WithBinaryPrefix("gm"),
			magick.WithBinaryPath("identify", "/opt/im/bin/identify"),
		)

		_, err := tool.Version(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "/opt/im/bin/identify -version", mockExec.RecordedCalls[0].CommandLine())
	})
}

func TestTool_StrictBindingRejectsUnboundPlaceholder(t *testing.T) {
	t.Parallel()

	mockExec := testutil.NewMockCommandExecutor()
	tool := magick.New(magick.WithExecutor(mockExec))

	// The option's sub-template introduces :text but never binds it.
	opts := []magick.Option{
		magick.Valued("-annotate", ":geometry :text", magick.Bind("geometry", "+10+10")),
	}
	err := tool.Mogrify(context.Background(), "a.jpg", opts...)

	assert.ErrorIs(t, err, magick.ErrUnboundPlaceholder)
	assert.Contains(t, err.Error(), "text")
	assert.Equal(t, 0, mockExec.CallCount(), "no subprocess may be spawned")
}

func TestTool_LegacyBindingPassesPlaceholderThrough(t *testing.T) {
	t.Parallel()

	mockExec := testutil.NewMockCommandExecutor()
	tool := magick.New(magick.WithExecutor(mockExec), magick.WithLegacyBinding())

	opts := []magick.Option{
		magick.Valued("-annotate", ":geometry :text", magick.Bind("geometry", "+10+10")),
	}
	err := tool.Mogrify(context.Background(), "a.jpg", opts...)
	require.NoError(t, err)

	assert.Equal(t, `mogrify "-annotate +10+10 :text" "a.jpg"`,
		mockExec.RecordedCalls[0].CommandLine())
}

func TestTool_ShellFailureWithoutOutputIsClassified(t *testing.T) {
	t.Parallel()

	mockExec := testutil.NewMockCommandExecutor()
	mockExec.AddResponse("mogrify", testutil.MockResponse{
		Err: errors.New("fork/exec /bin/sh: no such file or directory"),
	})
	tool := magick.New(magick.WithExecutor(mockExec))

	err := tool.Mogrify(context.Background(), "a.jpg")
	var unclassified *magick.UnclassifiedError
	require.ErrorAs(t, err, &unclassified)
	assert.Contains(t, unclassified.Output, "fork/exec")
}

func TestTool_ShellFailureIsNeverRawOutput(t *testing.T) {
	t.Parallel()

	// Operations that return output must not hand the shell's own error
	// text back as a result.
	mockExec := testutil.NewMockCommandExecutor()
	mockExec.AddResponse("identify -version", testutil.MockResponse{
		Err: errors.New("fork/exec /bin/sh: no such file or directory"),
	})
	tool := magick.New(magick.WithExecutor(mockExec))

	banner, err := tool.Version(context.Background())
	var unclassified *magick.UnclassifiedError
	require.ErrorAs(t, err, &unclassified)
	assert.Contains(t, unclassified.Output, "fork/exec")
	assert.Empty(t, banner)
}

func TestTool_ColonInFileNameIsNotAPlaceholder(t *testing.T) {
	t.Parallel()

	mockExec := testutil.NewMockCommandExecutor()
	tool := magick.New(magick.WithExecutor(mockExec))

	err := tool.Mogrify(context.Background(), "photo :final.jpg")
	require.NoError(t, err)

	require.Equal(t, 1, mockExec.CallCount())
	assert.Equal(t, `mogrify "photo :final.jpg"`, mockExec.RecordedCalls[0].CommandLine())
}
