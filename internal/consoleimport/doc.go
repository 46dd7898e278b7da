// Package consoleimport imports a Developer Console project export into an
// App Builder project. The project block lands in the project-local .aio
// file and the runtime credentials in .env as AIO_RUNTIME_* variables.
package consoleimport
