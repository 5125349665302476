/*
Package organize implements the transfer engine: it walks a source
directory, classifies each file by extension, and moves or copies it into
a categorized subdirectory of the destination.

	+-----------+     +----------+     +-----------+     +----------+
	| Enumerate | --> |  Filter  | --> |  Resolve  | --> | Transfer |
	| (snapshot)|     | (regex,  |     | (category |     | (move or |
	|           |     |  globs,  |     |  + unique |     |  copy +  |
	|           |     |  size)   |     |  target)  |     |  record) |
	+-----------+     +----------+     +-----------+     +----------+

🎯 Purpose:
- Enumerates candidate files up front (flat or recursive)
- Applies the filter predicates before any classification
- Resolves a collision-free target path per file
- Performs the move/copy and appends a ledger record on success

⚡ Key Responsibilities:
- Per-file isolation: one file's failure never aborts the batch
- A ledger record is appended only after the filesystem operation
  fully succeeded
- Dry-run reports intended actions without mutating anything

📝 Design Philosophy:
The candidate set is frozen before the first mutation, so files the
engine itself creates in the destination are never reconsidered, even
when the destination sits inside the source tree. Errors touching a
single candidate are collected into the run result instead of being
propagated; only structural preconditions (missing or non-directory
source) abort the run.
*/
package organize
