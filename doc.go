/*

Package escrowswap defines the contract between a ledger runtime and the
programs it invokes: accounts as seen by a program, storage economics
(rent), the program and asset-transfer service interfaces, and the values
the runtime passes down through context.Context.
Look into this package to get a brief overview of the extension points.
Runtime is implemented by the ledger package, programs live under x/.

*/

package escrowswap
