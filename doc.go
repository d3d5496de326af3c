// Package musictime provides a musical-time value type. A MusicTime is a
// position or duration on a bars/beats/subdivisions grid described by a
// TimeSignature. It converts between that grid and wall-clock seconds for a
// given tempo and supports arithmetic and comparison between instances.
package musictime
