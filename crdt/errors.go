package crdt

import "github.com/eidetica/eideticadb/dberrors"

func notFoundErr(key string) error {
	return dberrors.NotFoundf("key %q", key)
}

func invalidOperationErr(key, reason string) error {
	return dberrors.InvalidOperationf("key %q: %s", key, reason)
}
