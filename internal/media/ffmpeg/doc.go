// Package ffmpeg wraps the ffmpeg CLI for stream capture and lossless
// time-range extraction.
//
// Record encodes a bounded window of the live stream to mp3; Extract performs
// the -c copy slicing the segmenter relies on. Both respect context
// cancellation so a wedged stream cannot hang a run past its deadline.
package ffmpeg
