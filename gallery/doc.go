// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package gallery manages uploaded photos and timeline notes.

Photos live in two places: the file in a blob.Store and a record in the
photos collection. Adding uploads first and records second, removing the
upload if the record cannot be written. Deleting goes the other way: the
blob path is derived from the recorded URL, the blob is removed, and the
record goes last. A URL the blob store does not recognise aborts the delete
before anything is touched.

After each photo change the full slide list (configured static slides, then
photos oldest first) is rebuilt and handed to the carousel.

Notes come from the notes collection and from the fixed notes shipped in the
slides file (LoadFixedNotes). Both are listed together by date; fixed notes
cannot be deleted.
*/
package gallery
