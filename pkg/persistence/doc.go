// Package persistence stores the CEC source settings that must survive a
// restart: whether CEC and One Touch Play are enabled, the OSD name and the
// vendor ID.
//
// The file is JSON with the keys cecEnabled, cecOTPEnabled, cecOSDName and
// cecVendorId. Missing keys, and keys with the wrong type, fall back to their
// defaults one by one.
package persistence
