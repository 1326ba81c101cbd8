// Package connection keeps the CEC adapter open.
//
// Opening /dev/cecN can fail transiently: the driver may still be probing
// after boot, or another process may hold the adapter in exclusive mode.
// Manager retries the open with exponential backoff:
//
//  1. Initial delay: 500 milliseconds
//  2. Exponential increase: 1s, 2s, 4s, 8s, 16s
//  3. Maximum delay: 30 seconds
//  4. Reset to the initial delay after a successful open
//
// Jitter of up to a quarter of the base delay is added to each wait.
package connection
