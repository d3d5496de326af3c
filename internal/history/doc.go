// Package history persists finished metronome sessions in SQLite so practice
// time can be reviewed later.
package history
