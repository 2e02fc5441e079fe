// Package shipment contains the Shipment aggregate: the record of a purchased
// shipping label. A Shipment only ever comes into existence at the end of a
// successful checkout run, after both payment confirmation and label issuance
// have succeeded, and its lifecycle from that point is a small state machine
// where voiding is the single backward transition the core drives.
package shipment
