package contracts

const boardABIJSON = `[
  {"anonymous": false, "inputs": [
    {"indexed": true, "internalType": "uint256", "name": "postId", "type": "uint256"},
    {"indexed": true, "internalType": "address", "name": "author", "type": "address"},
    {"indexed": false, "internalType": "uint256", "name": "monAmount", "type": "uint256"}
  ], "name": "PostCreated", "type": "event"},
  {"anonymous": false, "inputs": [
    {"indexed": true, "internalType": "uint256", "name": "postId", "type": "uint256"},
    {"indexed": true, "internalType": "address", "name": "liker", "type": "address"}
  ], "name": "PostLiked", "type": "event"},
  {"anonymous": false, "inputs": [
    {"indexed": true, "internalType": "address", "name": "user", "type": "address"},
    {"indexed": false, "internalType": "string", "name": "nickname", "type": "string"}
  ], "name": "NicknameSet", "type": "event"},
  {"inputs": [
    {"internalType": "string", "name": "_title", "type": "string"},
    {"internalType": "string", "name": "_content", "type": "string"},
    {"internalType": "uint256", "name": "_monAmount", "type": "uint256"}
  ], "name": "createPost", "outputs": [], "stateMutability": "nonpayable", "type": "function"},
  {"inputs": [{"internalType": "uint256", "name": "_postId", "type": "uint256"}], "name": "getPost", "outputs": [
    {"internalType": "address", "name": "author", "type": "address"},
    {"internalType": "string", "name": "authorNickname", "type": "string"},
    {"internalType": "string", "name": "title", "type": "string"},
    {"internalType": "string", "name": "content", "type": "string"},
    {"internalType": "uint256", "name": "timestamp", "type": "uint256"},
    {"internalType": "uint256", "name": "likes", "type": "uint256"},
    {"internalType": "uint256", "name": "monAmount", "type": "uint256"}
  ], "stateMutability": "view", "type": "function"},
  {"inputs": [], "name": "getPostCount", "outputs": [{"internalType": "uint256", "name": "", "type": "uint256"}], "stateMutability": "view", "type": "function"},
  {"inputs": [], "name": "getTopPosts", "outputs": [{"internalType": "uint256[]", "name": "", "type": "uint256[]"}], "stateMutability": "view", "type": "function"},
  {"inputs": [{"internalType": "uint256", "name": "_postId", "type": "uint256"}], "name": "likePost", "outputs": [], "stateMutability": "nonpayable", "type": "function"},
  {"inputs": [{"internalType": "address", "name": "", "type": "address"}], "name": "nicknames", "outputs": [{"internalType": "string", "name": "", "type": "string"}], "stateMutability": "view", "type": "function"},
  {"inputs": [{"internalType": "string", "name": "_nickname", "type": "string"}], "name": "setNickname", "outputs": [], "stateMutability": "nonpayable", "type": "function"},
  {"inputs": [], "name": "withdrawFees", "outputs": [], "stateMutability": "nonpayable", "type": "function"}
]`

const votingABIJSON = `[
  {"anonymous": false, "inputs": [{"indexed": true, "internalType": "uint256", "name": "pollId", "type": "uint256"}], "name": "PollEnded", "type": "event"},
  {"anonymous": false, "inputs": [
    {"indexed": true, "internalType": "uint256", "name": "pollId", "type": "uint256"},
    {"indexed": false, "internalType": "string", "name": "title", "type": "string"},
    {"indexed": false, "internalType": "uint256", "name": "startTime", "type": "uint256"},
    {"indexed": false, "internalType": "uint256", "name": "endTime", "type": "uint256"}
  ], "name": "PollCreated", "type": "event"},
  {"anonymous": false, "inputs": [
    {"indexed": true, "internalType": "uint256", "name": "pollId", "type": "uint256"},
    {"indexed": true, "internalType": "address", "name": "voter", "type": "address"},
    {"indexed": false, "internalType": "uint256", "name": "optionIndex", "type": "uint256"},
    {"indexed": false, "internalType": "uint256", "name": "amount", "type": "uint256"}
  ], "name": "Voted", "type": "event"},
  {"inputs": [
    {"internalType": "string", "name": "_title", "type": "string"},
    {"internalType": "string", "name": "_description", "type": "string"},
    {"internalType": "string[]", "name": "_options", "type": "string[]"},
    {"internalType": "uint256", "name": "_duration", "type": "uint256"}
  ], "name": "createPoll", "outputs": [], "stateMutability": "nonpayable", "type": "function"},
  {"inputs": [{"internalType": "uint256", "name": "_pollId", "type": "uint256"}], "name": "endPoll", "outputs": [], "stateMutability": "nonpayable", "type": "function"},
  {"inputs": [{"internalType": "uint256", "name": "_pollId", "type": "uint256"}], "name": "getPollResults", "outputs": [
    {"internalType": "string", "name": "title", "type": "string"},
    {"internalType": "string", "name": "description", "type": "string"},
    {"internalType": "string[]", "name": "options", "type": "string[]"},
    {"internalType": "uint256[]", "name": "votes", "type": "uint256[]"},
    {"internalType": "uint256", "name": "totalVotes", "type": "uint256"},
    {"internalType": "uint256", "name": "startTime", "type": "uint256"},
    {"internalType": "uint256", "name": "endTime", "type": "uint256"},
    {"internalType": "bool", "name": "isActive", "type": "bool"}
  ], "stateMutability": "view", "type": "function"},
  {"inputs": [], "name": "minVoteAmount", "outputs": [{"internalType": "uint256", "name": "", "type": "uint256"}], "stateMutability": "view", "type": "function"},
  {"inputs": [], "name": "monToken", "outputs": [{"internalType": "contract IERC20", "name": "", "type": "address"}], "stateMutability": "view", "type": "function"},
  {"inputs": [], "name": "pollCount", "outputs": [{"internalType": "uint256", "name": "", "type": "uint256"}], "stateMutability": "view", "type": "function"},
  {"inputs": [
    {"internalType": "uint256", "name": "_pollId", "type": "uint256"},
    {"internalType": "uint256", "name": "_optionIndex", "type": "uint256"},
    {"internalType": "uint256", "name": "_amount", "type": "uint256"}
  ], "name": "vote", "outputs": [], "stateMutability": "nonpayable", "type": "function"},
  {"inputs": [], "name": "withdrawTokens", "outputs": [], "stateMutability": "nonpayable", "type": "function"}
]`

const slotMachineABIJSON = `[
  {"anonymous": false, "inputs": [
    {"indexed": true, "internalType": "address", "name": "player", "type": "address"},
    {"indexed": false, "internalType": "uint256", "name": "betAmount", "type": "uint256"},
    {"indexed": false, "internalType": "uint8[3]", "name": "result", "type": "uint8[3]"},
    {"indexed": false, "internalType": "uint256", "name": "winAmount", "type": "uint256"}
  ], "name": "Spin", "type": "event"},
  {"inputs": [{"internalType": "uint256", "name": "betAmount", "type": "uint256"}], "name": "spin", "outputs": [], "stateMutability": "nonpayable", "type": "function"},
  {"inputs": [], "name": "getJackpotPool", "outputs": [{"internalType": "uint256", "name": "", "type": "uint256"}], "stateMutability": "view", "type": "function"},
  {"inputs": [], "name": "getOwnerPool", "outputs": [{"internalType": "uint256", "name": "", "type": "uint256"}], "stateMutability": "view", "type": "function"}
]`

const autoHuntABIJSON = `[
  {"inputs": [{"internalType": "address", "name": "player", "type": "address"}], "name": "getCharacter", "outputs": [
    {"components": [
      {"internalType": "uint256", "name": "level", "type": "uint256"},
      {"internalType": "uint256", "name": "exp", "type": "uint256"},
      {"internalType": "uint256", "name": "power", "type": "uint256"},
      {"internalType": "uint256", "name": "lastHuntTime", "type": "uint256"},
      {"internalType": "bool", "name": "isHunting", "type": "bool"}
    ], "internalType": "struct AutoHunt.Character", "name": "", "type": "tuple"}
  ], "stateMutability": "view", "type": "function"},
  {"inputs": [], "name": "getMonsters", "outputs": [
    {"components": [
      {"internalType": "uint256", "name": "level", "type": "uint256"},
      {"internalType": "uint256", "name": "hp", "type": "uint256"},
      {"internalType": "uint256", "name": "exp", "type": "uint256"},
      {"internalType": "uint256", "name": "gcReward", "type": "uint256"}
    ], "internalType": "struct AutoHunt.Monster[]", "name": "", "type": "tuple[]"}
  ], "stateMutability": "view", "type": "function"},
  {"inputs": [], "name": "createCharacter", "outputs": [], "stateMutability": "nonpayable", "type": "function"},
  {"inputs": [{"internalType": "uint256", "name": "monsterId", "type": "uint256"}], "name": "startHunting", "outputs": [], "stateMutability": "nonpayable", "type": "function"},
  {"inputs": [
    {"internalType": "uint256", "name": "monsterId", "type": "uint256"},
    {"internalType": "uint256", "name": "expGained", "type": "uint256"},
    {"internalType": "uint256", "name": "gcGained", "type": "uint256"}
  ], "name": "completeHunt", "outputs": [], "stateMutability": "nonpayable", "type": "function"},
  {"inputs": [{"internalType": "uint256", "name": "monsterId", "type": "uint256"}], "name": "claimRewards", "outputs": [], "stateMutability": "nonpayable", "type": "function"}
]`
