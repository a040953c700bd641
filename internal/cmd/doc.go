// Package cmd provides the command-line interface of qiimewb.
//
// Every subcommand lives in its own file with a NewXxxCmd constructor that
// returns a *cobra.Command; NewRootCmd wires them into groups. The binary's
// main runs the root command through fang for styled help and errors.
//
// Commands that work on data share the session handling in session.go:
// without --workdir a fresh session directory is allocated under the
// configured base directory and the process changes into it; with --workdir
// an existing session is re-entered. All later paths are relative to the
// session directory.
package cmd
