// Package platform wraps the few filesystem calls whose behavior differs
// between operating systems, such as restricting secret files to the
// current user.
package platform
