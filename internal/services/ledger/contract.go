package ledger

// reportContractABI is the interface of the deployed report contract this
// service binds to. verifyReport reverts on-chain unless sent by the owner
// address; the off-chain authorization gate is advisory next to that.
const reportContractABI = `[
  {
    "inputs": [
      {"internalType": "string", "name": "title", "type": "string"},
      {"internalType": "string", "name": "description", "type": "string"},
      {"internalType": "string", "name": "category", "type": "string"},
      {"internalType": "string", "name": "evidence", "type": "string"},
      {"internalType": "int256", "name": "latitude", "type": "int256"},
      {"internalType": "int256", "name": "longitude", "type": "int256"},
      {"internalType": "string", "name": "latDirection", "type": "string"},
      {"internalType": "string", "name": "longDirection", "type": "string"}
    ],
    "name": "submitReport",
    "outputs": [],
    "stateMutability": "nonpayable",
    "type": "function"
  },
  {
    "inputs": [
      {"internalType": "uint256", "name": "reportIndex", "type": "uint256"},
      {"internalType": "uint256", "name": "tokensToMint", "type": "uint256"}
    ],
    "name": "verifyReport",
    "outputs": [],
    "stateMutability": "nonpayable",
    "type": "function"
  },
  {
    "inputs": [],
    "name": "getPendingReports",
    "outputs": [
      {
        "components": [
          {"internalType": "address", "name": "reporter", "type": "address"},
          {"internalType": "string", "name": "title", "type": "string"},
          {"internalType": "string", "name": "description", "type": "string"},
          {"internalType": "string", "name": "category", "type": "string"},
          {"internalType": "string", "name": "evidence", "type": "string"},
          {"internalType": "uint256", "name": "timestamp", "type": "uint256"},
          {"internalType": "int256", "name": "latitude", "type": "int256"},
          {"internalType": "int256", "name": "longitude", "type": "int256"},
          {"internalType": "string", "name": "latDirection", "type": "string"},
          {"internalType": "string", "name": "longDirection", "type": "string"},
          {"internalType": "uint256", "name": "mintedTokens", "type": "uint256"},
          {"internalType": "bool", "name": "verified", "type": "bool"}
        ],
        "internalType": "struct SimpleReportContract.Report[]",
        "name": "",
        "type": "tuple[]"
      }
    ],
    "stateMutability": "view",
    "type": "function"
  },
  {
    "inputs": [],
    "name": "getVerifiedReports",
    "outputs": [
      {
        "components": [
          {"internalType": "address", "name": "reporter", "type": "address"},
          {"internalType": "string", "name": "title", "type": "string"},
          {"internalType": "string", "name": "description", "type": "string"},
          {"internalType": "string", "name": "category", "type": "string"},
          {"internalType": "string", "name": "evidence", "type": "string"},
          {"internalType": "uint256", "name": "timestamp", "type": "uint256"},
          {"internalType": "int256", "name": "latitude", "type": "int256"},
          {"internalType": "int256", "name": "longitude", "type": "int256"},
          {"internalType": "string", "name": "latDirection", "type": "string"},
          {"internalType": "string", "name": "longDirection", "type": "string"},
          {"internalType": "uint256", "name": "mintedTokens", "type": "uint256"},
          {"internalType": "bool", "name": "verified", "type": "bool"}
        ],
        "internalType": "struct SimpleReportContract.Report[]",
        "name": "",
        "type": "tuple[]"
      }
    ],
    "stateMutability": "view",
    "type": "function"
  },
  {
    "inputs": [],
    "name": "getPendingReportsCount",
    "outputs": [{"internalType": "uint256", "name": "", "type": "uint256"}],
    "stateMutability": "view",
    "type": "function"
  },
  {
    "inputs": [{"internalType": "address", "name": "account", "type": "address"}],
    "name": "getTokenBalance",
    "outputs": [{"internalType": "uint256", "name": "", "type": "uint256"}],
    "stateMutability": "view",
    "type": "function"
  },
  {
    "inputs": [{"internalType": "address", "name": "account", "type": "address"}],
    "name": "getTokenTransactionHistory",
    "outputs": [
      {
        "components": [
          {"internalType": "address", "name": "account", "type": "address"},
          {"internalType": "uint256", "name": "amount", "type": "uint256"},
          {"internalType": "uint256", "name": "price", "type": "uint256"},
          {"internalType": "uint256", "name": "timestamp", "type": "uint256"},
          {"internalType": "enum SimpleReportContract.TransactionType", "name": "txType", "type": "uint8"}
        ],
        "internalType": "struct SimpleReportContract.TokenTransaction[]",
        "name": "",
        "type": "tuple[]"
      }
    ],
    "stateMutability": "view",
    "type": "function"
  },
  {
    "inputs": [],
    "name": "getTotalTokenSupply",
    "outputs": [{"internalType": "uint256", "name": "", "type": "uint256"}],
    "stateMutability": "view",
    "type": "function"
  },
  {
    "inputs": [],
    "name": "owner",
    "outputs": [{"internalType": "address", "name": "", "type": "address"}],
    "stateMutability": "view",
    "type": "function"
  }
]`
