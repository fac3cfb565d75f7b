/*
Package transfer implements a program moving native lamports between two
accounts.

The source account must be owned by the program, because a runtime lets
only the owner of an account debit it. A client assigns a funded account
to the program and then sends the Transfer instruction to move its funds
to any destination.
*/
package transfer
