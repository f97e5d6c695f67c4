// Package magick builds, runs, and interprets invocations of the
// ImageMagick command-line tools (identify, convert, mogrify, composite,
// montage). It is a shim, not an image-processing engine: all decoding,
// resizing, and compositing happens inside the external binaries.
//
// The package's own work is narrow. It renders a typed option list into a
// correctly quoted command string, hands that string to an injectable
// executor, classifies the subprocess's combined output against a fixed
// set of known error messages, and, for explicit metadata requests,
// parses the tool's delimited output into a typed record.
//
//	tool := magick.New()
//	err := tool.Convert(ctx, "in.jpg", "out.png",
//		[]magick.Option{magick.Valued("-resize", ":value", magick.Bind("value", "50%"))},
//		nil)
//
// Error classification is best-effort substring matching against the
// external tool's unversioned error messages. The rule order is part of
// the contract: callers pattern-match on the returned sentinel errors
// with errors.Is, and reordering the rules would silently reclassify
// output that contains more than one matchable substring.
package magick
