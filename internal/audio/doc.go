// Package audio handles container format detection, normalization to PCM WAV,
// and splitting of WAV streams into payload-bounded chunks for transcription.
package audio
