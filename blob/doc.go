// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package blob stores uploaded photos.

Two backends implement Store: LocalStore writes under a directory served at
/uploads, GCSStore writes to a Cloud Storage bucket. Paths come from
ObjectPath and are content addressed:

	p := blob.ObjectPath("photos", data, "beach.jpg")
	ref, err := store.Upload(ctx, p, data, "image/jpeg")

Deleting starts from the public reference saved with the photo record.
PathFromRef refuses anything it did not hand out with ErrMalformedRef, and
callers abort the whole delete in that case.
*/
package blob
