package cmd

const rootLongDescription = `tqfuzz takes a known-good TQF query document, applies one controlled
perturbation at a time to a single field, runs the dosing engine CLI on
every mutant and classifies what the engine did with it.

Configuration is read from ` + "`.tqfuzz.yaml`" + ` when present; flags override it.`

const runLongDescription = `Run every selected mutator over every field of the original query.

Each mutant is written to the scratch directory as <prefix>_<n>.tqf and the
target is invoked as:

  <target-executable> -d <drug-definitions-dir> -i <mutant> -o <out-dir>/<prefix>_<n>.xml

Outcomes are appended to NNN_LOG, failures also to NNN_ERROR and crashes or
timeouts, with the target's stderr, to NNN_CRASH. NNN is incremented until
the run log name is free.

Exit status: 0 when the sweep completed, 1 on a runtime error, 2 when the
configuration is invalid.`

const listLongDescription = `List the mutator catalog. With --original-input, also count the fields
each mutator would change in that query.`

const viewLongDescription = `View the runs stored in a results database, or the per-mutator outcome
table of one run with --run.`
