/*
Package token is a minimal asset-transfer service. It owns token accounts,
each holding an amount of a single mint under control of an authority.

An authority approves an operation either by signing the transaction, or,
when it is a program derived address, by the invoking program providing
the seeds that address was derived from.
*/
package token
