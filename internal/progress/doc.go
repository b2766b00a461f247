// Package progress prints the human-readable status lines chronos shows on
// standard output while it works ("🔄 Step 1: ...", "✅ Found 4 ...").
//
// Progress lines are separate from logging: logs go to stderr through
// internal/log and are quiet by default, progress lines always go to stdout.
package progress
