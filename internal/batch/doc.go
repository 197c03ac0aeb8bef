// Package batch pushes every entry of an input directory through an
// external push client, one at a time, and times each push.
//
// For each entry the runner prints the entry name, runs
// `<command> <args...> <put-flag> <entry>` and waits for it, prints the
// elapsed time, adds it to the running total and pauses for the configured
// delay. The pause follows every entry, the last one included, and is never
// part of a measured duration. The client's exit status does not change
// what is printed; only a directory that cannot be listed fails the run.
package batch
