// Package workdir allocates per-user session working directories.
//
// On a shared tutorial server several people run the same workflow at once.
// Each of them gets a directory named by a random suffix under a common base
// directory, e.g. temp/aZbQmNpLsTxY, and every download and tool output of
// the session lands below it. Separation is purely probabilistic: a suffix of
// 12 letters from the 52-letter alphabet gives 52^12 possible names, so no
// locking or coordination between users takes place.
//
// Allocation creates all intermediate directories, changes the process
// working directory into the new path and records a small JSON manifest
// (session.json) so that later invocations can re-enter the session with
// Open. Sessions are never removed by this package; cleanup is manual.
package workdir
