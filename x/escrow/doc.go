/*
Package escrow implements an atomic two party token swap.

> An escrow is a financial arrangement where a third party holds and regulates
> payment of the funds required for two parties involved in a given transaction.

Here the third party is the program itself. The initializer hands a temporary
token account over to an address derived from the program identity. Such an
address has no private key, so only this program can move the tokens held in
custody, and only by supplying the same seeds it was derived from.

The algorithm is as follows:
 1. Initializer creates a temporary token account holding the tokens offered
    and an empty escrow account large enough to keep the escrow record.
 2. Initializer sends the Init instruction with the amount of tokens they want
    in return. The record is stored and custody of the temporary account is
    given to the derived address.
 3. Taker sends the Exchange instruction declaring the amount of tokens they
    expect to receive. If it matches what is held in custody, the taker pays
    the initializer, receives the tokens held in custody, the temporary
    account is closed and the escrow account is reclaimed by the initializer.

Either instruction fails as a whole. The runtime discards every change made
by a failed instruction.
*/
package escrow
