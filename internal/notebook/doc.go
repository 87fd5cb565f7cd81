// Package notebook scrapes books and their highlights from the Kindle
// notebook page (read.amazon.com/notebook).
//
// The Client drives an authenticated browser through the page: restore the
// saved session cookies, wait for the library sidebar, click each book and
// capture the rendered annotation list. All DOM extraction is done by pure
// parsing functions on captured HTML so it stays testable without a browser.
//
// There is no retry policy. A navigation or wait failure propagates to the
// caller and aborts the run; the tool is meant to be re-run later by an
// external scheduler.
package notebook
