// Package fetcher provides HTTP fetching for the announcement site's list and
// detail pages.
//
// The site serves most pages as UTF-8 but some legacy pages as Big5, so the
// fetcher validates each response as UTF-8 and transparently re-decodes
// through Big5 when that fails. Transport failures are reported as *Error so
// callers can distinguish them from parse problems.
package fetcher
