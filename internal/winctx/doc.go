// Package winctx decodes the native exception structures handed to a Windows
// unhandled-exception filter on x86 and x64.
package winctx
