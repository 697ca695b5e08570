// Package answer turns a reconstructed conversation transcript into up to
// three candidate reply messages.
//
// [Generator] builds the generation request (fixed instruction + transcript
// + emotion), streams the model response, and reassembles it into one raw
// string. [Sanitize] then parses that raw string into clean candidate
// replies, stripping the list markers and headers generation models tend to
// add despite instructions.
package answer
